package setting

import (
	"github.com/aquacoop/aquacoop/internal/setting/repository"
	"github.com/aquacoop/aquacoop/internal/setting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("setting.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
