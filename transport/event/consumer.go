package event

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/internal/domains/audit/service"

	"github.com/rs/zerolog/log"
)

// Consumer feeds booking lifecycle events into the audit log.
type Consumer struct {
	Config *config.Config
	Kafka  kafka.Client
	Audit  service.Audit
}

func New(cfg *config.Config, kafka kafka.Client, audit service.Audit) *Consumer {
	return &Consumer{
		Config: cfg,
		Kafka:  kafka,
		Audit:  audit,
	}
}

// Run consumes until ctx is cancelled and in-flight events are recorded.
func (c *Consumer) Run(ctx context.Context) error {
	topic := c.Config.Kafka.Topic.BookingEvents
	group := c.Config.Kafka.ConsumerGroup

	if len(c.Config.Kafka.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	log.Info().Str("topic", topic).Str("group", group).Msg("Starting booking event consumer.")

	consumeErr := c.Kafka.Consume(ctx, group, topic, c.Audit.Handle)
	if consumeErr != nil {
		consumeErr = fmt.Errorf("failed to consume %s: %w", topic, consumeErr)
	}

	if err := c.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client.")
	}

	log.Info().Msg("Booking event consumer stopped.")

	return consumeErr
}
