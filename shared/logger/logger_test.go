package logger_test

import (
	"bytes"
	"context"
	"errors"
	"hotelbook/config"
	"hotelbook/shared/constant"
	"hotelbook/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("overlap query failed"))

	assert.Contains(t, buf.String(), "overlap query failed")
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "warn level", logLevel: "warn", expectedLevel: zerolog.WarnLevel},
		{name: "error level", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "disabled level", logLevel: "disabled", expectedLevel: zerolog.Disabled},
		{name: "invalid level defaults to trace", logLevel: "invalid_level", expectedLevel: zerolog.TraceLevel},
		{name: "empty level uses NoLevel", logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var buf bytes.Buffer

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.ConfigureTo(cfg, &buf)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_JSONFormat(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.LogLevel = "info"
	cfg.Server.LogFormat = logger.FormatJSON
	cfg.App.Name = "hotelbook"

	logger.ConfigureTo(cfg, &buf)
	buf.Reset()

	log.Info().Str("room", "101").Msg("room released")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, `"service":"hotelbook"`)
	assert.Contains(t, out, `"room":"101"`)
	assert.Contains(t, out, `"message":"room released"`)
	assert.NotContains(t, out, "hidden")
}

func TestFromContext(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := context.WithValue(context.Background(), constant.ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "42")

	logger.FromContext(ctx).Info().Msg("booking created")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"user_id":"42"`)
	assert.Contains(t, out, "booking created")

	buf.Reset()
	logger.FromContext(context.Background()).Info().Msg("plain")
	assert.NotContains(t, buf.String(), "request_id")
}
