package payment

import (
	"github.com/aquacoop/aquacoop/internal/payment/repository"
	"github.com/aquacoop/aquacoop/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
