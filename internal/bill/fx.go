package bill

import (
	"github.com/aquacoop/aquacoop/internal/bill/repository"
	"github.com/aquacoop/aquacoop/internal/bill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
