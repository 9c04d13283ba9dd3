package health

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/shared/constant"
	"hotelbook/transport/http/response"
	"net/http"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const checkTimeout = 2 * time.Second

// Pinger is a dependency the service needs to answer requests.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks map[string]Pinger
	otel   otel.Otel
}

func New(conn *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return NewWithChecks(otel, map[string]Pinger{
		"postgres.read":  conn.Read,
		"postgres.write": conn.Write,
		"redis": PingerFunc(func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		}),
	})
}

func NewWithChecks(otel otel.Otel, checks map[string]Pinger) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

// Check pings every dependency concurrently and answers 503 when one of them fails.
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	for name, check := range handler.checks {
		group.Go(func() error {
			if err := check.PingContext(groupCtx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("health check failed")

		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}
