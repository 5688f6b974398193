package expense

import (
	"github.com/aquacoop/aquacoop/internal/expense/repository"
	"github.com/aquacoop/aquacoop/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
