package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/metrics"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/repository"
	customerService "hotelbook/internal/domains/customer/service"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	paymentModel "hotelbook/internal/domains/payment/model"
	paymentService "hotelbook/internal/domains/payment/service"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	"hotelbook/permissions"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	gRepo "hotelbook/shared/repository"
	"hotelbook/shared/statuscode"
	"hotelbook/shared/timezone"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	opCreateBooking  = "create_booking"
	opCheckIn        = "check_in"
	opCheckOut       = "check_out"
	opCancel         = "cancel"
	opAssignRoom     = "assign_room"
	opConfirmBooking = "confirm_booking"
	opCheckInBooking = "check_in_booking"
)

// every view a booking mutation can make stale
var cachePrefixes = slices.Concat(
	[]string{model.CacheGetBooking, model.CacheGetAllBooking},
	roomModel.CachePrefixes,
	paymentModel.CachePrefixes,
)

// Engine is the only writer of booking and room status. Each mutation runs as one unit of
// work with the affected room locked; cache invalidation and events follow the commit.
type Engine interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	CheckIn(ctx context.Context, req dto.WalkInRequest) (statuscode.Result, error)
	CheckOut(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	AssignRoom(ctx context.Context, id int64, req dto.AssignRoomRequest) error
	ConfirmBooking(ctx context.Context, id int64, req dto.ConfirmRequest) error
	CheckInBooking(ctx context.Context, id int64) error
	GetBooking(ctx context.Context, id int64) (dto.BookingResponse, error)
	ListBookings(ctx context.Context, filter model.Filter, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	MyBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	rooms     roomRepo.Room
	hotels    hotelRepo.Hotel
	customers customerService.Customer
	ledger    paymentService.Ledger
	tx        gRepo.Transactor
	kafka     kafka.Client
	metrics   metrics.Metrics
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomRepo.Room,
	hotels hotelRepo.Hotel,
	customers customerService.Customer,
	ledger paymentService.Ledger,
	tx gRepo.Transactor,
	kafka kafka.Client,
	metrics metrics.Metrics,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Engine {
	return &serviceImpl{
		repo:      repo,
		rooms:     rooms,
		hotels:    hotels,
		customers: customers,
		ledger:    ledger,
		tx:        tx,
		kafka:     kafka,
		metrics:   metrics,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) GetBooking(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.repo.Get(ctx, id)
		if err != nil {
			log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == 0 {
			return res, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		res.FromModel(booking)

		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}

	if restricted(ctx, permissions.CapBookingViewAll) && !ownedBy(ctx, res.CustomerEmail) {
		// other customers' bookings are indistinguishable from missing ones
		return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) ListBookings(ctx context.Context, filter model.Filter, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if filter.Status != nil && !filter.Status.Valid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown booking status %q", *filter.Status)) // nolint:wrapcheck
	}

	params.RestrictSort(constant.DefaultValueSortBy, constant.DefaultValueSortBy, model.FieldCheckIn, model.FieldCheckOut, model.FieldStatus)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllBooking, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, filter, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

// MyBookings lists the bookings made under the caller's email.
func (s *serviceImpl) MyBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error) {
	email := shared.CallerEmail(ctx)
	if email == "" {
		return dto.GetBookingsResponse{}, failure.Unauthorized("missing user email") // nolint:wrapcheck
	}

	return s.ListBookings(ctx, model.Filter{CustomerEmail: &email}, params)
}

func (s *serviceImpl) observe(operation string, start time.Time, err error) {
	s.metrics.ObserveOperation(operation, metrics.Outcome(err, string(failure.GetKind(err))), time.Since(start))
}

// afterCommit runs once a unit of work is durable. Nothing here can fail the operation.
func (s *serviceImpl) afterCommit(ctx context.Context, eventType model.EventType, booking model.Booking) {
	ctx = context.WithoutCancel(ctx)

	shared.InvalidateCaches(ctx, s.cache, cachePrefixes...)

	if !s.cfg.Kafka.Enable {
		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	topic := s.cfg.Kafka.Topic.BookingEvents

	err := s.kafka.SendMessages(ctx, topic, kafka.Message{
		Key:   strconv.FormatInt(booking.ID, 10),
		Value: model.NewEvent(eventType, booking, actor, timezone.Now()),
	})
	s.metrics.ObserveEvent(topic, metrics.Outcome(err, ""))

	if err != nil {
		log.Error().Err(err).Int64("booking_id", booking.ID).Str("event", string(eventType)).Msg("failed to publish booking event")
	}
}

// restricted reports whether the caller's role lacks capability. In-process callers carry
// no role and are trusted.
func restricted(ctx context.Context, capability permissions.Capability) bool {
	role := permissions.RoleFromContext(ctx)

	return role != "" && !role.Can(capability)
}

func ownedBy(ctx context.Context, email string) bool {
	caller := shared.CallerEmail(ctx)

	return caller != "" && caller == shared.NormalizeEmail(email)
}
