package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/customer/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
)

// the no-op update makes RETURNING yield the existing row on conflict
const queryFindOrCreate = `INSERT INTO customers (name, email, mobile, proof, account_ref, created_at, modified_at, created_by, modified_by)
	VALUES (:name, :email, :mobile, :proof, :account_ref, :created_at, :modified_at, :created_by, :modified_by)
	ON CONFLICT (email) WHERE email <> ''
	DO UPDATE SET email = EXCLUDED.email
	RETURNING id`

type Customer interface {
	Insert(ctx context.Context, model model.Customer) (int64, error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
	FindOrCreate(ctx context.Context, model model.Customer) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (model.Customer, error) {
	return r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	return r.Repository.Get(ctx, gDto.And(gDto.Filter{ //nolint:wrapcheck
		Field:    model.FieldEmail,
		Value:    email,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}))
}

// FindOrCreate inserts the customer unless one with the same email exists and returns its id.
func (r *repositoryImpl) FindOrCreate(ctx context.Context, customer model.Customer) (int64, error) {
	var id int64

	args := map[string]any{
		"name":        customer.Name,
		"email":       customer.Email,
		"mobile":      customer.Mobile,
		"proof":       customer.Proof,
		"account_ref": customer.AccountRef,
		"created_at":  customer.CreatedAt,
		"modified_at": customer.ModifiedAt,
		"created_by":  customer.CreatedBy,
		"modified_by": customer.ModifiedBy,
	}

	if _, err := r.Repository.QueryRow(ctx, &id, queryFindOrCreate, args); err != nil {
		return 0, fmt.Errorf("failed to find or create customer: %w", err)
	}

	return id, nil
}
