package main

import (
	"go.uber.org/fx"

	"github.com/eatshare/eats-back/internal/config"
	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/health"
	"github.com/eatshare/eats-back/internal/logger"
	"github.com/eatshare/eats-back/internal/service"
	"github.com/eatshare/eats-back/internal/transport"
)

func main() {
	fx.New(
		fx.Provide(config.NewConfig),
		logger.Module,
		db.Module,
		service.Module,
		transport.Module,
		health.Module,
		fx.Invoke(func(*transport.HTTPServer, *health.GRPCServer) {}),
	).Run()
}
