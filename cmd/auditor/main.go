package main

import (
	"context"
	"hotelbook/config"
	"hotelbook/di"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeAuditor()

	if err := consumer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Booking event consumer stopped unexpectedly")
	}
}
