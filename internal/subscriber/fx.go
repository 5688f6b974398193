package subscriber

import (
	"github.com/aquacoop/aquacoop/internal/subscriber/repository"
	"github.com/aquacoop/aquacoop/internal/subscriber/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscriber.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
