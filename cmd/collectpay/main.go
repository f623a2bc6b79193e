package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/config"
	"github.com/collectpay/collectpay/internal/logger"
	"github.com/collectpay/collectpay/internal/migration"
	"github.com/collectpay/collectpay/internal/server"
	"github.com/collectpay/collectpay/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
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
