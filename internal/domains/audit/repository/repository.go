package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/audit/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
)

type AuditLog interface {
	// Insert reports false when the event was already recorded.
	Insert(ctx context.Context, model model.AuditLog) (bool, error)
	GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.AuditLog, error)
	Count(ctx context.Context, filter model.Filter) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AuditLog]
}

func New(db *postgres.Connection, otel otel.Otel) AuditLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AuditLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, log model.AuditLog) (bool, error) {
	_, err := r.Repository.Insert(ctx, log)
	if gRepo.IsUniqueViolation(err) {
		return false, nil
	}

	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return true, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter model.Filter, params gDto.QueryParams) ([]model.AuditLog, error) {
	return r.Repository.GetAll(ctx, params, buildFilter(filter)) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, filter model.Filter) (int, error) {
	return r.Repository.Count(ctx, buildFilter(filter)) //nolint:wrapcheck
}

func buildFilter(filter model.Filter) gDto.FilterGroup {
	group := gDto.And()

	if filter.EventType != nil {
		group.Add(gDto.Filter{Field: model.FieldEventType, Value: *filter.EventType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.BookingID != nil {
		group.Add(gDto.Filter{Field: model.FieldBookingID, Value: *filter.BookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}
