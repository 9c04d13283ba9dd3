package main

import (
	"context"
	"hotelbook/config"
	"hotelbook/di"
	"hotelbook/helper"
	"hotelbook/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	http := di.InitializeService()

	if err := http.Serve(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped unexpectedly")
	}
}
