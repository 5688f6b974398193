package meterreading

import (
	"github.com/aquacoop/aquacoop/internal/meterreading/repository"
	"github.com/aquacoop/aquacoop/internal/meterreading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meterreading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
