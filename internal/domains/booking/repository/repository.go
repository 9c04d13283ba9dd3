package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
	"hotelbook/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) (int64, error)
	Get(ctx context.Context, id int64) (model.Booking, error)
	GetForUpdate(ctx context.Context, id int64) (model.Booking, error)
	GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.Booking, error)
	Count(ctx context.Context, filter model.Filter) (int, error)
	HasOverlap(ctx context.Context, query model.OverlapQuery) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status, user string) (bool, error)
	AssignRoom(ctx context.Context, id, roomID int64, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (model.Booking, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetForUpdate(ctx context.Context, id int64) (model.Booking, error) {
	return r.Repository.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.Booking, error) {
	if params.SortBy != "" {
		params.SortBy = model.TableName + "." + params.SortBy
	}

	return r.Repository.GetAll(ctx, params, buildFilter(filter)) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, filter model.Filter) (int, error) {
	return r.Repository.Count(ctx, buildFilter(filter)) //nolint:wrapcheck
}

// HasOverlap reports whether an active booking on the room intersects [CheckIn, CheckOut).
func (r *repositoryImpl) HasOverlap(ctx context.Context, query model.OverlapQuery) (bool, error) {
	filter := gDto.And(
		gDto.Filter{Field: model.FieldRoomID, Value: query.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckIn, ArgName: "stay_check_out", Value: query.CheckOut, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckOut, ArgName: "stay_check_in", Value: query.CheckIn, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)

	if query.ExcludeID != 0 {
		filter.Add(gDto.Filter{Field: model.FieldID, Value: query.ExcludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return r.Repository.Exist(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.Status, user string) (bool, error) {
	return r.update(ctx, id, map[string]any{model.FieldStatus: status}, user)
}

func (r *repositoryImpl) AssignRoom(ctx context.Context, id, roomID int64, user string) (bool, error) {
	return r.update(ctx, id, map[string]any{model.FieldRoomID: roomID}, user)
}

func (r *repositoryImpl) update(ctx context.Context, id int64, fields map[string]any, user string) (bool, error) {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	affected, err := r.Repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

func buildFilter(filter model.Filter) gDto.FilterGroup {
	group := gDto.And()

	if filter.CustomerID != nil {
		group.Add(gDto.Filter{Field: model.FieldCustomerID, Value: *filter.CustomerID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.CustomerEmail != nil {
		group.Add(gDto.Filter{Field: "email", ArgName: "customer_email", Value: *filter.CustomerEmail, Operator: gDto.FilterOperatorEq, Table: "customers"})
	}

	if filter.HotelID != nil {
		group.Add(gDto.Filter{Field: model.FieldHotelID, Value: *filter.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.RoomID != nil {
		group.Add(gDto.Filter{Field: model.FieldRoomID, Value: *filter.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.Status != nil {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: *filter.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}
