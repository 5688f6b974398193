package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/aquacoop/aquacoop/internal/config"
	"github.com/aquacoop/aquacoop/internal/logger"
	"github.com/aquacoop/aquacoop/internal/migration"
	"github.com/aquacoop/aquacoop/internal/scheduler"
	"github.com/aquacoop/aquacoop/internal/server"
	"github.com/aquacoop/aquacoop/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
