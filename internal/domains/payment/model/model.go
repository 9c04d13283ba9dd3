package model

import (
	"hotelbook/shared/model"
	"hotelbook/shared/money"
	"time"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldPaidOn    = "paid_on"
)

const (
	CacheRevenue        = "revenue:total"
	CacheRevenueHotels  = "revenue:hotels"
	CacheRevenueMonthly = "revenue:monthly"
)

// CachePrefixes are cleared whenever a payment is recorded.
var CachePrefixes = []string{CacheRevenue, CacheRevenueHotels, CacheRevenueMonthly}

type Method string

const (
	MethodCash         Method = "cash"
	MethodCard         Method = "card"
	MethodUPI          Method = "upi"
	MethodBankTransfer Method = "bank_transfer"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodBankTransfer:
		return true
	default:
		return false
	}
}

// Payment is immutable once recorded.
type Payment struct {
	ID          int64        `db:"id"          insert:"-"`
	BookingID   int64        `db:"booking_id"`
	Amount      money.Amount `db:"amount"`
	Method      Method       `db:"method"`
	PaidOn      time.Time    `db:"paid_on"`
	Description string       `db:"description"`
	model.Metadata
}

// RevenueQuery narrows revenue to a hotel and a half-open [From, To) window on paid_on.
type RevenueQuery struct {
	HotelID *int64
	From    *time.Time
	To      *time.Time
}

type HotelRevenue struct {
	HotelID   int64        `db:"hotel_id"`
	HotelName string       `db:"hotel_name"`
	Bookings  int          `db:"bookings"`
	Revenue   money.Amount `db:"revenue"`
}

type MonthlyRevenue struct {
	Month   time.Time    `db:"month"`
	Revenue money.Amount `db:"revenue"`
}
