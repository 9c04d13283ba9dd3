package service

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/audit/model"
	"hotelbook/internal/domains/audit/model/dto"
	"hotelbook/internal/domains/audit/repository"
	bookingModel "hotelbook/internal/domains/booking/model"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Audit interface {
	Record(ctx context.Context, event bookingModel.Event) error
	Handle(ctx context.Context, message kafkaGo.Message) error
	List(ctx context.Context, filter model.Filter, params gDto.QueryParams) (dto.GetAuditLogsResponse, error)
}

type serviceImpl struct {
	repo  repository.AuditLog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.AuditLog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Audit {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, event bookingModel.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".RecordAudit")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookingID := event.BookingID

	entry := model.AuditLog{
		EventID:   event.ID,
		EventType: string(event.Type),
		EventDesc: describe(event),
		BookingID: &bookingID,
		Actor:     event.Actor,
		CreatedAt: event.OccurredAt,
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timezone.Now()
	}

	created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("failed to record audit log")

		return fmt.Errorf("failed to record audit log: %w", err)
	}

	if !created {
		log.Debug().Str("event_id", event.ID).Msg("audit event already recorded")

		return nil
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllAuditLog)

	return nil
}

// Handle decodes a booking event from the lifecycle topic and records it.
func (s *serviceImpl) Handle(ctx context.Context, message kafkaGo.Message) error {
	event, err := kafka.DecodeKafkaMessage[bookingModel.Event](message)
	if err != nil {
		// a malformed payload will never decode; skip it
		log.Warn().Err(err).Str("key", string(message.Key)).Msg("dropping undecodable booking event")

		return nil
	}

	return s.Record(ctx, event)
}

func (s *serviceImpl) List(ctx context.Context, filter model.Filter, params gDto.QueryParams) (res dto.GetAuditLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAuditLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.RestrictSort(model.FieldCreatedAt, model.FieldCreatedAt, model.FieldEventType)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllAuditLog, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit logs")

		return res, fmt.Errorf("failed to count audit logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, filter, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save audit logs to cache")
	}

	return res, nil
}

func describe(event bookingModel.Event) string {
	desc := fmt.Sprintf("booking %d in hotel %d is %s", event.BookingID, event.HotelID, event.Status)
	if event.RoomID != nil {
		desc += fmt.Sprintf(" (room %d)", *event.RoomID)
	}

	return desc
}
