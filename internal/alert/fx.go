package alert

import (
	"github.com/aquacoop/aquacoop/internal/alert/repository"
	"github.com/aquacoop/aquacoop/internal/alert/service"
	"go.uber.org/fx"
)

var Module = fx.Module("alert.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
