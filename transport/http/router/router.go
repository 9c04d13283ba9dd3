package router

import (
	"cmp"
	"hotelbook/config"
	"hotelbook/infras/metrics"
	"hotelbook/internal/handlers/audit"
	"hotelbook/internal/handlers/booking"
	"hotelbook/internal/handlers/health"
	"hotelbook/internal/handlers/hotel"
	"hotelbook/internal/handlers/payment"
	"hotelbook/internal/handlers/room"
	"hotelbook/transport/http/middleware"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const defaultMetricsPath = "/metrics"

type DomainHandlers struct {
	Health  health.Handler
	Hotel   hotel.Handler
	Room    room.Handler
	Booking booking.Handler
	Payment payment.Handler
	Audit   audit.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	Metrics        metrics.Metrics
	Config         *config.Config
}

// SetupRoutes mounts the public probes at the root and the API under /v1.
// Every /v1 route must appear in the permission table or RBAC rejects it.
func (r *Router) SetupRoutes(router chi.Router, ready func() bool) {
	router.Get("/health", func(writer http.ResponseWriter, request *http.Request) {
		if !ready() {
			response.WithPreparingShutdown(writer)

			return
		}

		r.DomainHandlers.Health.Check(writer, request)
	})

	if r.Config.Metrics.Enable {
		router.Handle(cmp.Or(r.Config.Metrics.Path, defaultMetricsPath), r.Metrics.Handler())
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Audit.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, metrics metrics.Metrics, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		Metrics:        metrics,
		Config:         cfg,
	}
}
