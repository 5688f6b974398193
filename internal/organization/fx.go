package organization

import (
	"github.com/aquacoop/aquacoop/internal/organization/repository"
	"github.com/aquacoop/aquacoop/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
