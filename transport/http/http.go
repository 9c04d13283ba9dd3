package http

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/shared/constant"
	"hotelbook/transport/http/middleware"
	"hotelbook/transport/http/router"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	traceFlushTimeout = 5 * time.Second
	defaultHost       = "0.0.0.0"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Otel       otel.Otel

	state     atomic.Int32
	setupOnce sync.Once
	mux       *chi.Mux
}

func New(cfg *config.Config, r router.Router, m middleware.AppMiddleware, ot otel.Otel) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: m,
		Otel:       ot,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Handler returns the fully wired router, for serverless entry points and tests.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

// Serve listens until ctx is cancelled, then walks through the grace period (health
// reports 503 so load balancers drain) and the cleanup period (in-flight requests
// finish) before the listener is closed.
func (h *HTTP) Serve(ctx context.Context) error {
	h.setup()

	host := h.Config.Server.Host
	if host == "" {
		host = defaultHost
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		return h.shutdown(server)
	})

	err := group.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
	defer cancel()

	if flushErr := h.Otel.Shutdown(flushCtx); flushErr != nil {
		log.Warn().Err(flushErr).Msg("Failed to flush traces.")
	}

	return err
}

func (h *HTTP) setup() {
	h.setupOnce.Do(func() {
		h.mux = chi.NewRouter()

		h.mux.Use(chiMiddleware.Recoverer)
		h.mux.Use(h.Middleware.RequestID)
		h.mux.Use(h.Middleware.AccessLog)
		h.mux.Use(h.Middleware.Tracing)
		h.mux.Use(h.Middleware.Metrics)

		if h.Config.App.CORS.Enable {
			h.mux.Use(cors.Handler(h.corsOptions()))
		}

		h.mux.Use(h.Middleware.RateLimit)

		h.Router.SetupRoutes(h.mux, func() bool { return h.State() == ServerStateReady })

		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) corsOptions() cors.Options {
	corsConfig := h.Config.App.CORS

	return cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		ExposedHeaders:   []string{constant.RequestHeaderRequestID, constant.RequestHeaderRateLimitRemaining},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}
}

func (h *HTTP) shutdown(server *http.Server) error {
	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received shutdown signal. Shutting down now.")

		return server.Close() //nolint:wrapcheck
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")

	return nil
}
