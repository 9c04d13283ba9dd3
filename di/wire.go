//go:build wireinject
// +build wireinject

package di

import (
	"hotelbook/config"
	"hotelbook/infras/jwt"
	"hotelbook/infras/kafka"
	"hotelbook/infras/metrics"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/infras/redis"
	"hotelbook/permissions"
	"hotelbook/shared/cache"
	gRepo "hotelbook/shared/repository"
	"hotelbook/transport/event"
	"hotelbook/transport/http"
	"hotelbook/transport/http/middleware"
	"hotelbook/transport/http/router"

	auditRepository "hotelbook/internal/domains/audit/repository"
	auditService "hotelbook/internal/domains/audit/service"
	bookingRepository "hotelbook/internal/domains/booking/repository"
	bookingService "hotelbook/internal/domains/booking/service"
	customerRepository "hotelbook/internal/domains/customer/repository"
	customerService "hotelbook/internal/domains/customer/service"
	hotelRepository "hotelbook/internal/domains/hotel/repository"
	hotelService "hotelbook/internal/domains/hotel/service"
	paymentRepository "hotelbook/internal/domains/payment/repository"
	paymentService "hotelbook/internal/domains/payment/service"
	roomRepository "hotelbook/internal/domains/room/repository"
	roomService "hotelbook/internal/domains/room/service"

	"github.com/google/wire"

	auditHandler "hotelbook/internal/handlers/audit"
	bookingHandler "hotelbook/internal/handlers/booking"
	healthHandler "hotelbook/internal/handlers/health"
	hotelHandler "hotelbook/internal/handlers/hotel"
	paymentHandler "hotelbook/internal/handlers/payment"
	roomHandler "hotelbook/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var inventoryDomain = wire.NewSet(
	hotelRepository.New,
	hotelRepository.NewRoomClass,
	hotelService.New,
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	bookingDomain,
	auditDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	hotelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	auditHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeAuditor() *event.Consumer {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		metrics.New,
		cache.NewRedisCache,
		auditDomain,
		event.New,
	)

	return &event.Consumer{}
}
