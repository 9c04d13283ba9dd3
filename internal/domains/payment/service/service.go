package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	"hotelbook/internal/domains/payment/model"
	"hotelbook/internal/domains/payment/model/dto"
	"hotelbook/internal/domains/payment/repository"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const maxRevenueMonths = 120

// Ledger records payments against bookings and reports revenue.
type Ledger interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (int64, error)
	AggregateRevenue(ctx context.Context, query model.RevenueQuery) (dto.RevenueResponse, error)
	RevenueByHotel(ctx context.Context) ([]dto.HotelRevenueResponse, error)
	RevenueByMonth(ctx context.Context, months int) ([]dto.MonthlyRevenueResponse, error)
	ListPayments(ctx context.Context, bookingID int64) ([]dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Payment, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookings,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// RecordPayment joins the transaction carried by ctx when there is one.
func (s *serviceImpl) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Amount.IsPositive() {
		return 0, failure.BadRequestFromString("payment amount must be greater than zero") // nolint:wrapcheck
	}

	if !model.Method(req.Method).Valid() {
		return 0, failure.BadRequestFromString(fmt.Sprintf("unknown payment method %q", req.Method)) // nolint:wrapcheck
	}

	booking, err := s.bookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to get booking")

		return 0, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return 0, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.repo.Insert(ctx, req.ToModel(user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to record payment")

		return 0, failure.PersistenceFailure(fmt.Errorf("failed to record payment: %w", err))
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefixes...)

	return id, nil
}

func (s *serviceImpl) AggregateRevenue(ctx context.Context, query model.RevenueQuery) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AggregateRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if query.From != nil && query.To != nil && !query.To.After(*query.From) {
		return res, failure.InvalidDateRange("to must be after from") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(model.CacheRevenue, revenueKey(query))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	revenue, err := s.repo.Sum(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate revenue")

		return res, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	res = dto.RevenueResponse{HotelID: query.HotelID, Revenue: revenue}
	if query.From != nil {
		res.From = timezone.FormatDate(*query.From)
	}

	if query.To != nil {
		res.To = timezone.FormatDate(*query.To)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save revenue to cache")
	}

	return res, nil
}

func (s *serviceImpl) RevenueByHotel(ctx context.Context) (res []dto.HotelRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevenueByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheRevenueHotels, "all")

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.repo.RevenueByHotel(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue by hotel")

		return nil, fmt.Errorf("failed to get revenue by hotel: %w", err)
	}

	res = dto.FromHotelRevenues(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save revenue by hotel to cache")
	}

	return res, nil
}

// RevenueByMonth covers the current month and the months-1 before it.
func (s *serviceImpl) RevenueByMonth(ctx context.Context, months int) (res []dto.MonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevenueByMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	if months <= 0 {
		months = constant.DefaultRevenueMonth
	}

	if months > maxRevenueMonths {
		return nil, failure.BadRequestFromString(fmt.Sprintf("months must not exceed %d", maxRevenueMonths)) // nolint:wrapcheck
	}

	now := timezone.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1-months, 0)

	cacheKey := shared.BuildCacheKey(model.CacheRevenueMonthly, since.Format(constant.MonthFormat))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.repo.RevenueByMonth(ctx, since)
	if err != nil {
		log.Error().Err(err).Int("months", months).Msg("failed to get revenue by month")

		return nil, fmt.Errorf("failed to get revenue by month: %w", err)
	}

	res = dto.FromMonthlyRevenues(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save revenue by month to cache")
	}

	return res, nil
}

func (s *serviceImpl) ListPayments(ctx context.Context, bookingID int64) (res []dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetByBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to list payments")

		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return dto.FromPayments(models), nil
}

func revenueKey(query model.RevenueQuery) string {
	key := "all"
	if query.HotelID != nil {
		key = fmt.Sprint(*query.HotelID)
	}

	if query.From != nil {
		key += ":from=" + timezone.FormatDate(*query.From)
	}

	if query.To != nil {
		key += ":to=" + timezone.FormatDate(*query.To)
	}

	return key
}
