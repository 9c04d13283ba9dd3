package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/otel/mocks"
	bookingMocks "hotelbook/internal/domains/booking/mocks"
	bookingModel "hotelbook/internal/domains/booking/model"
	paymentMocks "hotelbook/internal/domains/payment/mocks"
	"hotelbook/internal/domains/payment/model"
	"hotelbook/internal/domains/payment/model/dto"
	"hotelbook/internal/domains/payment/service"
	"hotelbook/shared/cache"
	cacheMocks "hotelbook/shared/cache/mocks"
	"hotelbook/shared/failure"
	"hotelbook/shared/money"
)

type ledgerMocks struct {
	repo     *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
}

func newLedger(t *testing.T) (service.Ledger, ledgerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := ledgerMocks{
		repo:     paymentMocks.NewMockPayment(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(m.repo, m.bookings, cfg, m.cache, mocks.NewOtel()), m
}

func TestLedger_RecordPayment(t *testing.T) {
	valid := dto.RecordPaymentRequest{BookingID: 1, Amount: money.FromMajor(5000), Method: "card"}

	tests := []struct {
		name      string
		req       dto.RecordPaymentRequest
		setupMock func(m ledgerMocks)
		wantErr   func(err error) bool
	}{
		{
			name: "recorded",
			req:  valid,
			setupMock: func(m ledgerMocks) {
				m.bookings.EXPECT().Get(gomock.Any(), int64(1)).Return(bookingModel.Booking{ID: 1}, nil)
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, payment model.Payment) (int64, error) {
						assert.Equal(t, money.FromMajor(5000), payment.Amount)
						assert.Equal(t, model.MethodCard, payment.Method)
						assert.False(t, payment.PaidOn.IsZero())

						return 9, nil
					})
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(len(model.CachePrefixes))
			},
		},
		{
			name:      "zero amount",
			req:       dto.RecordPaymentRequest{BookingID: 1, Method: "cash"},
			setupMock: func(ledgerMocks) {},
			wantErr:   func(err error) bool { return failure.GetCode(err) == http.StatusBadRequest },
		},
		{
			name:      "unknown method",
			req:       dto.RecordPaymentRequest{BookingID: 1, Amount: 100, Method: "cheque"},
			setupMock: func(ledgerMocks) {},
			wantErr:   func(err error) bool { return failure.GetCode(err) == http.StatusBadRequest },
		},
		{
			name: "unknown booking",
			req:  valid,
			setupMock: func(m ledgerMocks) {
				m.bookings.EXPECT().Get(gomock.Any(), int64(1)).Return(bookingModel.Booking{}, nil)
			},
			wantErr: func(err error) bool { return failure.IsKind(err, failure.KindNotFound) },
		},
		{
			name: "write error",
			req:  valid,
			setupMock: func(m ledgerMocks) {
				m.bookings.EXPECT().Get(gomock.Any(), int64(1)).Return(bookingModel.Booking{ID: 1}, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr: func(err error) bool { return failure.IsKind(err, failure.KindPersistenceFailure) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, m := newLedger(t)
			tt.setupMock(m)

			_, err := ledger.RecordPayment(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedger_AggregateRevenue(t *testing.T) {
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	hotelID := int64(1)

	t.Run("inverted range", func(t *testing.T) {
		ledger, _ := newLedger(t)

		_, err := ledger.AggregateRevenue(context.Background(), model.RevenueQuery{From: &to, To: &from})
		assert.True(t, failure.IsKind(err, failure.KindInvalidDateRange))
	})

	t.Run("sums and caches", func(t *testing.T) {
		ledger, m := newLedger(t)
		query := model.RevenueQuery{HotelID: &hotelID, From: &from, To: &to}

		m.cache.EXPECT().Get(gomock.Any(), "revenue:total:1:from=2025-03-01:to=2025-04-01", gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Sum(gomock.Any(), query).Return(money.FromMajor(7500), nil)
		m.cache.EXPECT().Save(gomock.Any(), "revenue:total:1:from=2025-03-01:to=2025-04-01", gomock.Any(), 3600).Return(nil)

		res, err := ledger.AggregateRevenue(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(7500), res.Revenue)
		assert.Equal(t, "2025-03-01", res.From)
		assert.Equal(t, "2025-04-01", res.To)
	})

	t.Run("repository error", func(t *testing.T) {
		ledger, m := newLedger(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Sum(gomock.Any(), gomock.Any()).Return(money.Amount(0), errors.New("database error"))

		_, err := ledger.AggregateRevenue(context.Background(), model.RevenueQuery{})
		assert.Error(t, err)
	})
}

func TestLedger_RevenueByHotel(t *testing.T) {
	ledger, m := newLedger(t)

	m.cache.EXPECT().Get(gomock.Any(), "revenue:hotels:all", gomock.Any()).Return(cache.Nil)
	m.repo.EXPECT().RevenueByHotel(gomock.Any()).Return([]model.HotelRevenue{
		{HotelID: 1, HotelName: "H1", Bookings: 2, Revenue: money.FromMajor(8500)},
		{HotelID: 2, HotelName: "H2"},
	}, nil)
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := ledger.RevenueByHotel(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "H1", res[0].HotelName)
	assert.True(t, res[1].Revenue.IsZero())
}

func TestLedger_RevenueByMonth(t *testing.T) {
	t.Run("defaults to a year", func(t *testing.T) {
		ledger, m := newLedger(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().
			RevenueByMonth(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, since time.Time) ([]model.MonthlyRevenue, error) {
				assert.Equal(t, 1, since.Day())
				assert.WithinDuration(t, time.Now().AddDate(-1, 0, 0), since, 62*24*time.Hour)

				return []model.MonthlyRevenue{{Month: since, Revenue: money.FromMajor(100)}}, nil
			})
		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := ledger.RevenueByMonth(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("too many months", func(t *testing.T) {
		ledger, _ := newLedger(t)

		_, err := ledger.RevenueByMonth(context.Background(), 121)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestLedger_ListPayments(t *testing.T) {
	ledger, m := newLedger(t)

	m.repo.EXPECT().GetByBooking(gomock.Any(), int64(1)).Return([]model.Payment{
		{ID: 1, BookingID: 1, Amount: money.FromMajor(5000), Method: model.MethodCash},
	}, nil)

	res, err := ledger.ListPayments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "cash", res[0].Method)
}
