package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) (int64, error)
	Get(ctx context.Context, id int64) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Hotel, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, patch model.HotelPatch, user string) (bool, error)
}

type RoomClass interface {
	Insert(ctx context.Context, model model.RoomClass) (int64, error)
	Get(ctx context.Context, id int64) (model.RoomClass, error)
	GetByHotel(ctx context.Context, hotelID int64) ([]model.RoomClass, error)
}

type hotelRepository struct {
	gRepo.Repository[model.Hotel]
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &hotelRepository{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityHotel, model.TableHotel, model.FieldID, db, otel),
	}
}

func (r *hotelRepository) Get(ctx context.Context, id int64) (model.Hotel, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableHotel)) //nolint:wrapcheck
}

func (r *hotelRepository) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Hotel, error) {
	return r.Repository.GetAll(ctx, params, gDto.FilterGroup{}) //nolint:wrapcheck
}

func (r *hotelRepository) Count(ctx context.Context) (int, error) {
	return r.Repository.Count(ctx, gDto.FilterGroup{}) //nolint:wrapcheck
}

func (r *hotelRepository) Update(ctx context.Context, id int64, patch model.HotelPatch, user string) (bool, error) {
	affected, err := r.Repository.Update(ctx, shared.TransformFields(patch, user), shared.FilterByID(id, model.FieldID, model.TableHotel))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

type roomClassRepository struct {
	gRepo.Repository[model.RoomClass]
}

func NewRoomClass(db *postgres.Connection, otel otel.Otel) RoomClass {
	return &roomClassRepository{
		Repository: gRepo.NewRepository[model.RoomClass](model.EntityRoomClass, model.TableRoomClass, model.FieldID, db, otel),
	}
}

func (r *roomClassRepository) Get(ctx context.Context, id int64) (model.RoomClass, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableRoomClass)) //nolint:wrapcheck
}

func (r *roomClassRepository) GetByHotel(ctx context.Context, hotelID int64) ([]model.RoomClass, error) {
	params := gDto.QueryParams{SortBy: model.TableRoomClass + "." + model.FieldNightlyRate, SortDir: "ASC"}

	return r.Repository.GetAll(ctx, params, shared.FilterByID(hotelID, model.FieldHotelID, model.TableRoomClass)) //nolint:wrapcheck
}
