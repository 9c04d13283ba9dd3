package service

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	"hotelbook/internal/domains/room/model"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/domains/room/repository"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Room interface {
	CreateRoom(ctx context.Context, hotelID int64, req dto.CreateRoomRequest) (int64, error)
	GetRoom(ctx context.Context, id int64) (dto.RoomResponse, error)
	ListRooms(ctx context.Context, hotelID int64, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	ListAvailableRooms(ctx context.Context, query model.AvailabilityQuery) ([]dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Occupancy(ctx context.Context, hotelID *int64) (dto.OccupancyResponse, error)
}

type serviceImpl struct {
	repo      repository.Room
	hotelRepo hotelRepo.Hotel
	classRepo hotelRepo.RoomClass
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Room, hotels hotelRepo.Hotel, classes hotelRepo.RoomClass, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotels,
		classRepo: classes,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) CreateRoom(ctx context.Context, hotelID int64, req dto.CreateRoomRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.hotelRepo.Get(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to get hotel")

		return 0, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return 0, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	class, err := s.classRepo.Get(ctx, req.ClassID)
	if err != nil {
		log.Error().Err(err).Int64("class_id", req.ClassID).Msg("failed to get room class")

		return 0, fmt.Errorf("failed to get room class: %w", err)
	}

	if class.ID == 0 || class.HotelID != hotelID {
		return 0, failure.BadRequestFromString("room class does not belong to this hotel") // nolint:wrapcheck
	}

	if err = s.checkCapacity(ctx, class.ID, class.RoomCount); err != nil {
		return 0, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.repo.Insert(ctx, req.ToModel(hotelID, user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create room")

		return 0, fmt.Errorf("failed to create room: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefixes...)

	return id, nil
}

// checkCapacity compares the class's room count with its capacity hint. It only
// rejects when enforcement is switched on.
func (s *serviceImpl) checkCapacity(ctx context.Context, classID int64, capacity int) error {
	if capacity <= 0 {
		return nil
	}

	count, err := s.repo.CountByClass(ctx, classID)
	if err != nil {
		log.Error().Err(err).Int64("class_id", classID).Msg("failed to count rooms in class")

		return fmt.Errorf("failed to count rooms in class: %w", err)
	}

	if count < capacity {
		return nil
	}

	if s.cfg.App.Booking.EnforceRoomCapacity {
		return failure.Conflict(fmt.Sprintf("room class already has %d of %d rooms", count, capacity)) // nolint:wrapcheck
	}

	log.Warn().Int64("class_id", classID).Int("rooms", count).Int("room_count", capacity).Msg("room class is over its room count")

	return nil
}

func (s *serviceImpl) GetRoom(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.RoomNotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) ListRooms(ctx context.Context, hotelID int64, params gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.RestrictSort(model.FieldRoomNumber, model.FieldID, model.FieldRoomNumber, model.FieldStatus, constant.FieldCreatedAt)

	filter := model.Filter{HotelID: &hotelID}
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllRoom, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, filter, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

// ListAvailableRooms returns bookable rooms with no active booking overlapping the stay,
// ordered by room number. No match is an empty list.
func (s *serviceImpl) ListAvailableRooms(ctx context.Context, query model.AvailabilityQuery) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !query.CheckOut.After(query.CheckIn) {
		return nil, failure.InvalidDateRange("check_out must be after check_in") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheAvailableRoom, gDto.QueryParams{}, query)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	rooms, err := s.repo.ListAvailable(ctx, query)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", query.HotelID).Msg("failed to list available rooms")

		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}

	res = dto.FromModels(rooms)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save available rooms to cache")
	}

	return res, nil
}

// UpdateStatus is an administrative override and applies any valid status.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, status model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !status.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown room status %q", status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated, err := s.repo.UpdateStatus(ctx, id, status, user)
	if err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	if !updated {
		return failure.RoomNotFound("room not found") // nolint:wrapcheck
	}

	log.Info().Int64("room_id", id).Str("status", string(status)).Str("user", user).Msg("room status overridden")

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefixes...)

	return nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, hotelID *int64) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	key := "all"
	if hotelID != nil {
		key = fmt.Sprint(*hotelID)
	}

	cacheKey := shared.BuildCacheKey(model.CacheOccupancy, key)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	occupancy, err := s.repo.Occupancy(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute occupancy")

		return res, fmt.Errorf("failed to compute occupancy: %w", err)
	}

	res.FromModel(hotelID, occupancy)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save occupancy to cache")
	}

	return res, nil
}
