package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Customer=MockCustomerService

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/customer/model"
	"hotelbook/internal/domains/customer/model/dto"
	"hotelbook/internal/domains/customer/repository"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type Customer interface {
	Resolve(ctx context.Context, req dto.ResolveRequest) (int64, error)
	CreateWalkIn(ctx context.Context, req dto.WalkInRequest) (int64, error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
}

type serviceImpl struct {
	repo repository.Customer
	otel otel.Otel
}

func New(repo repository.Customer, otel otel.Otel) Customer {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Resolve returns the customer registered under req.Email, creating it on first sight.
func (s *serviceImpl) Resolve(ctx context.Context, req dto.ResolveRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(req.Email) == "" {
		return 0, failure.BadRequestFromString("customer email is required") // nolint:wrapcheck
	}

	existing, err := s.GetByEmail(ctx, req.Email)
	if err == nil {
		return existing.ID, nil
	}

	if !failure.IsKind(err, failure.KindCustomerNotFound) {
		return 0, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.repo.FindOrCreate(ctx, req.ToModel(user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return 0, failure.PersistenceFailure(fmt.Errorf("failed to create customer: %w", err))
	}

	log.Info().Int64("customer_id", id).Msg("customer registered")

	return id, nil
}

func (s *serviceImpl) CreateWalkIn(ctx context.Context, req dto.WalkInRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateWalkIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	id, err = s.repo.Insert(ctx, req.ToModel(user, timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create walk-in customer")

		return 0, failure.PersistenceFailure(fmt.Errorf("failed to create walk-in customer: %w", err))
	}

	return id, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (customer model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == 0 {
		return customer, failure.CustomerNotFound("customer not found") // nolint:wrapcheck
	}

	return customer, nil
}

func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (customer model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomerByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err = s.repo.GetByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer by email")

		return customer, fmt.Errorf("failed to get customer by email: %w", err)
	}

	if customer.ID == 0 {
		return customer, failure.CustomerNotFound("customer not found") // nolint:wrapcheck
	}

	return customer, nil
}
