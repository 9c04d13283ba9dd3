package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	bookingModel "hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/room/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	gRepo "hotelbook/shared/repository"
	"hotelbook/shared/timezone"
)

const (
	// a room is free when no active booking intersects [check_in, check_out)
	queryNoActiveOverlap = `NOT EXISTS (
		SELECT 1 FROM bookings
		WHERE bookings.room_id = rooms.id
		AND bookings.status IN (:active_0, :active_1)
		AND bookings.check_in < :check_out
		AND :check_in < bookings.check_out
	)`

	queryOccupancy = `SELECT
		COUNT(rooms.id) AS total_rooms,
		COUNT(rooms.id) FILTER (WHERE rooms.status = :occupied) AS occupied_rooms
		FROM rooms
		WHERE (:hotel_id = 0 OR rooms.hotel_id = :hotel_id)`
)

type Room interface {
	Insert(ctx context.Context, model model.Room) (int64, error)
	Get(ctx context.Context, id int64) (model.Room, error)
	GetForUpdate(ctx context.Context, id int64) (model.Room, error)
	FindByNumber(ctx context.Context, hotelID *int64, roomNumber string) (model.Room, error)
	GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.Room, error)
	Count(ctx context.Context, filter model.Filter) (int, error)
	CountByClass(ctx context.Context, classID int64) (int, error)
	ListAvailable(ctx context.Context, query model.AvailabilityQuery) ([]model.Room, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status, user string) (bool, error)
	Occupancy(ctx context.Context, hotelID *int64) (model.Occupancy, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, room model.Room) (int64, error) {
	id, err := r.Repository.Insert(ctx, room)
	if gRepo.IsUniqueViolation(err) {
		return 0, failure.Conflict(fmt.Sprintf("room %s already exists in this hotel", room.RoomNumber))
	}

	return id, err //nolint:wrapcheck
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (model.Room, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetForUpdate(ctx context.Context, id int64) (model.Room, error) {
	return r.Repository.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// FindByNumber resolves a room number within a hotel, or the lowest-id match across hotels.
func (r *repositoryImpl) FindByNumber(ctx context.Context, hotelID *int64, roomNumber string) (model.Room, error) {
	filter := gDto.And(gDto.Filter{
		Field:    model.FieldRoomNumber,
		Value:    roomNumber,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	if hotelID != nil {
		filter.Add(gDto.Filter{Field: model.FieldHotelID, Value: *hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	params := gDto.QueryParams{Limit: 1, SortBy: qualified(model.FieldID), SortDir: gDto.SortDirAsc}

	rooms, err := r.Repository.GetAll(ctx, params, filter)
	if err != nil || len(rooms) == 0 {
		return model.Room{}, err //nolint:wrapcheck
	}

	return rooms[0], nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.Room, error) {
	params.SortBy = qualified(params.SortBy)

	return r.Repository.GetAll(ctx, params, buildFilter(filter)) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, filter model.Filter) (int, error) {
	return r.Repository.Count(ctx, buildFilter(filter)) //nolint:wrapcheck
}

func (r *repositoryImpl) CountByClass(ctx context.Context, classID int64) (int, error) {
	return r.Repository.Count(ctx, shared.FilterByID(classID, model.FieldClassID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListAvailable(ctx context.Context, query model.AvailabilityQuery) ([]model.Room, error) {
	status := model.StatusMaintenance

	filter := buildFilter(model.Filter{HotelID: &query.HotelID, ClassID: query.ClassID})
	filter.Add(gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	filter.Add(gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    queryNoActiveOverlap,
		Args: map[string]any{
			"active_0":  bookingModel.StatusConfirmed,
			"active_1":  bookingModel.StatusCheckedIn,
			"check_in":  query.CheckIn,
			"check_out": query.CheckOut,
		},
	})

	params := gDto.QueryParams{SortBy: qualified(model.FieldRoomNumber), SortDir: gDto.SortDirAsc}

	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.Status, user string) (bool, error) {
	affected, err := r.Repository.Update(ctx, map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

func (r *repositoryImpl) Occupancy(ctx context.Context, hotelID *int64) (model.Occupancy, error) {
	var occupancy model.Occupancy

	args := map[string]any{"hotel_id": int64(0), "occupied": model.StatusOccupied}
	if hotelID != nil {
		args["hotel_id"] = *hotelID
	}

	if _, err := r.Repository.QueryRow(ctx, &occupancy, queryOccupancy, args); err != nil {
		return occupancy, err //nolint:wrapcheck
	}

	return occupancy, nil
}

func buildFilter(filter model.Filter) gDto.FilterGroup {
	group := gDto.And()

	if filter.HotelID != nil {
		group.Add(gDto.Filter{Field: model.FieldHotelID, Value: *filter.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.ClassID != nil {
		group.Add(gDto.Filter{Field: model.FieldClassID, Value: *filter.ClassID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.Status != nil {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: *filter.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

func qualified(column string) string {
	if column == "" {
		return column
	}

	return model.TableName + "." + column
}
