package auth

import (
	"github.com/aquacoop/aquacoop/internal/auth/repository"
	"github.com/aquacoop/aquacoop/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
