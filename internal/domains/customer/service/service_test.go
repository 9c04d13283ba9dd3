package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/infras/otel/mocks"
	customerMocks "hotelbook/internal/domains/customer/mocks"
	"hotelbook/internal/domains/customer/model"
	"hotelbook/internal/domains/customer/model/dto"
	"hotelbook/internal/domains/customer/service"
	"hotelbook/shared/failure"
)

func TestCustomerService_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ResolveRequest
		setupMock func(repo *customerMocks.MockCustomer)
		wantID    int64
		wantErr   func(err error) bool
	}{
		{
			name: "existing customer",
			req:  dto.ResolveRequest{Email: " Ada@Example.com "},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(model.Customer{ID: 4, Email: "ada@example.com"}, nil)
			},
			wantID: 4,
		},
		{
			name: "first sight creates the customer",
			req:  dto.ResolveRequest{Email: "bob@example.com", AccountRef: "user-9"},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(model.Customer{}, nil)
				repo.EXPECT().
					FindOrCreate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, customer model.Customer) (int64, error) {
						assert.Equal(t, "bob", customer.Name)
						assert.Equal(t, "user-9", customer.AccountRef)

						return 5, nil
					})
			},
			wantID: 5,
		},
		{
			name:      "missing email",
			req:       dto.ResolveRequest{Name: "Nobody"},
			setupMock: func(*customerMocks.MockCustomer) {},
			wantErr:   func(err error) bool { return failure.GetCode(err) == http.StatusBadRequest },
		},
		{
			name: "lookup error",
			req:  dto.ResolveRequest{Email: "ada@example.com"},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.Customer{}, errors.New("database error"))
			},
			wantErr: func(err error) bool { return err != nil && failure.GetKind(err) == "" },
		},
		{
			name: "write error",
			req:  dto.ResolveRequest{Email: "ada@example.com"},
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)
				repo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr: func(err error) bool { return failure.IsKind(err, failure.KindPersistenceFailure) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customerMocks.NewMockCustomer(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, mocks.NewOtel())
			id, err := svc.Resolve(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCustomerService_CreateWalkIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customerMocks.NewMockCustomer(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, customer model.Customer) (int64, error) {
			assert.Empty(t, customer.Email)
			assert.Equal(t, "PASSPORT-1", customer.Proof)

			return 3, nil
		})

	id, err := svc.CreateWalkIn(context.Background(), dto.WalkInRequest{Name: "Walk In", Proof: "PASSPORT-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))

	_, err = svc.CreateWalkIn(context.Background(), dto.WalkInRequest{Name: "Walk In", Proof: "PASSPORT-2"})
	assert.True(t, failure.IsKind(err, failure.KindPersistenceFailure))
}

func TestCustomerService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customerMocks.NewMockCustomer(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Customer{ID: 1, Name: "Ada"}, nil)
	repo.EXPECT().Get(gomock.Any(), int64(2)).Return(model.Customer{}, nil)

	customer, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.Name)

	_, err = svc.Get(context.Background(), 2)
	assert.True(t, failure.IsKind(err, failure.KindCustomerNotFound))
}
