package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/payment/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/money"
	gRepo "hotelbook/shared/repository"
	"time"
)

const (
	querySumRevenue = `SELECT COALESCE(SUM(payments.amount), 0) AS revenue
		FROM payments
		JOIN bookings ON bookings.id = payments.booking_id %s`

	queryRevenueByHotel = `SELECT hotels.id AS hotel_id, hotels.name AS hotel_name,
		COUNT(DISTINCT bookings.id) AS bookings,
		COALESCE(SUM(payments.amount), 0) AS revenue
		FROM hotels
		LEFT JOIN bookings ON bookings.hotel_id = hotels.id
		LEFT JOIN payments ON payments.booking_id = bookings.id
		GROUP BY hotels.id, hotels.name
		ORDER BY revenue DESC, hotels.id ASC`

	queryRevenueByMonth = `SELECT date_trunc('month', payments.paid_on) AS month,
		SUM(payments.amount) AS revenue
		FROM payments
		WHERE payments.paid_on >= :since
		GROUP BY 1
		ORDER BY 1 ASC`
)

type Payment interface {
	Insert(ctx context.Context, model model.Payment) (int64, error)
	GetByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error)
	Sum(ctx context.Context, query model.RevenueQuery) (money.Amount, error)
	RevenueByHotel(ctx context.Context) ([]model.HotelRevenue, error)
	RevenueByMonth(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error) {
	params := gDto.QueryParams{SortBy: model.FieldPaidOn, SortDir: gDto.SortDirAsc}

	return r.Repository.GetAll(ctx, params, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) Sum(ctx context.Context, query model.RevenueQuery) (money.Amount, error) {
	filter := gDto.And()

	if query.HotelID != nil {
		filter.Add(gDto.Filter{Field: "hotel_id", Value: *query.HotelID, Operator: gDto.FilterOperatorEq, Table: "bookings"})
	}

	if query.From != nil {
		filter.Add(gDto.Filter{Field: model.FieldPaidOn, ArgName: "paid_from", Value: *query.From, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if query.To != nil {
		filter.Add(gDto.Filter{Field: model.FieldPaidOn, ArgName: "paid_to", Value: *query.To, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	where, args := r.Repository.BuildWhereClause(ctx, filter)

	var revenue money.Amount
	if _, err := r.Repository.QueryRow(ctx, &revenue, fmt.Sprintf(querySumRevenue, where), args); err != nil {
		return 0, err //nolint:wrapcheck
	}

	return revenue, nil
}

func (r *repositoryImpl) RevenueByHotel(ctx context.Context) ([]model.HotelRevenue, error) {
	res := []model.HotelRevenue{}

	if err := r.Repository.Select(ctx, &res, queryRevenueByHotel, map[string]any{}); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return res, nil
}

func (r *repositoryImpl) RevenueByMonth(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error) {
	res := []model.MonthlyRevenue{}

	if err := r.Repository.Select(ctx, &res, queryRevenueByMonth, map[string]any{"since": since}); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return res, nil
}
