package profile

import (
	"github.com/aquacoop/aquacoop/internal/profile/repository"
	"github.com/aquacoop/aquacoop/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
