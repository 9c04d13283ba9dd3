package service

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/repository"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Hotel interface {
	CreateHotel(ctx context.Context, req dto.CreateHotelRequest) (int64, error)
	GetHotel(ctx context.Context, id int64) (dto.HotelResponse, error)
	ListHotels(ctx context.Context, params gDto.QueryParams) (dto.GetHotelsResponse, error)
	UpdateHotel(ctx context.Context, id int64, req dto.UpdateHotelRequest) error
	CreateRoomClass(ctx context.Context, hotelID int64, req dto.CreateRoomClassRequest) (int64, error)
	ListRoomClasses(ctx context.Context, hotelID int64) ([]dto.RoomClassResponse, error)
}

type serviceImpl struct {
	repo      repository.Hotel
	classRepo repository.RoomClass
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Hotel, classRepo repository.RoomClass, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:      repo,
		classRepo: classRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) CreateHotel(ctx context.Context, req dto.CreateHotelRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.repo.Insert(ctx, req.ToModel(user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create hotel")

		return 0, fmt.Errorf("failed to create hotel: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllHotel)

	return id, nil
}

func (s *serviceImpl) GetHotel(ctx context.Context, id int64) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGetHotel, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	res.FromModel(hotel)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save hotel to cache")
	}

	return res, nil
}

func (s *serviceImpl) ListHotels(ctx context.Context, params gDto.QueryParams) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListHotels")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.RestrictSort(model.FieldID, model.FieldID, model.FieldName, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllHotel, params, nil)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	hotels, err := s.repo.GetAll(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(hotels, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save hotels to cache")
	}

	return res, nil
}

func (s *serviceImpl) UpdateHotel(ctx context.Context, id int64, req dto.UpdateHotelRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	patch := req.ToPatch()
	if patch.Empty() {
		return failure.BadRequestFromString("nothing to update") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated, err := s.repo.Update(ctx, id, patch, user)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", id).Msg("failed to update hotel")

		return fmt.Errorf("failed to update hotel: %w", err)
	}

	if !updated {
		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	log.Info().Int64("hotel_id", id).Str("user", user).Msg("hotel updated")

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGetHotel, id)); err != nil {
		log.Error().Err(err).Int64("hotel_id", id).Msg("failed to evict hotel from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllHotel)

	return nil
}

func (s *serviceImpl) CreateRoomClass(ctx context.Context, hotelID int64, req dto.CreateRoomClassRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomClass")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.GetHotel(ctx, hotelID); err != nil {
		return 0, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.classRepo.Insert(ctx, req.ToModel(hotelID, user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to create room class")

		return 0, fmt.Errorf("failed to create room class: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheListRoomClass)

	return id, nil
}

func (s *serviceImpl) ListRoomClasses(ctx context.Context, hotelID int64) (res []dto.RoomClassResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListRoomClasses")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheListRoomClass, hotelID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	if _, err = s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	classes, err := s.classRepo.GetByHotel(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to get room classes")

		return nil, fmt.Errorf("failed to get room classes: %w", err)
	}

	res = dto.FromRoomClasses(classes)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room classes to cache")
	}

	return res, nil
}
