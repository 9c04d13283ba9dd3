package dto

import (
	"hotelbook/internal/domains/payment/model"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/money"
	"time"
)

type RecordPaymentRequest struct {
	BookingID   int64        `json:"booking_id"  validate:"required,gt=0"`
	Amount      money.Amount `json:"amount"      validate:"gt=0"`
	Method      string       `json:"method"      validate:"required,oneof=cash card upi bank_transfer"`
	Description string       `json:"description" validate:"omitempty,max=255"`
}

func (r *RecordPaymentRequest) ToModel(user string, now time.Time) model.Payment {
	return model.Payment{
		BookingID:   r.BookingID,
		Amount:      r.Amount,
		Method:      model.Method(r.Method),
		PaidOn:      now,
		Description: r.Description,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type PaymentResponse struct {
	ID          int64        `json:"id"`
	BookingID   int64        `json:"booking_id"`
	Amount      money.Amount `json:"amount"`
	Method      string       `json:"method"`
	PaidOn      string       `json:"paid_on"`
	Description string       `json:"description,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = string(model.Method)
	r.PaidOn = model.PaidOn.Format(constant.DateFormat)
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

func FromPayments(models []model.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type RevenueResponse struct {
	HotelID *int64       `json:"hotel_id,omitempty"`
	From    string       `json:"from,omitempty"`
	To      string       `json:"to,omitempty"`
	Revenue money.Amount `json:"revenue"`
}

type HotelRevenueResponse struct {
	HotelID   int64        `json:"hotel_id"`
	HotelName string       `json:"hotel_name"`
	Bookings  int          `json:"bookings"`
	Revenue   money.Amount `json:"revenue"`
}

func FromHotelRevenues(models []model.HotelRevenue) []HotelRevenueResponse {
	res := make([]HotelRevenueResponse, len(models))
	for i, mod := range models {
		res[i] = HotelRevenueResponse(mod)
	}

	return res
}

type MonthlyRevenueResponse struct {
	Month   string       `json:"month"`
	Revenue money.Amount `json:"revenue"`
}

func FromMonthlyRevenues(models []model.MonthlyRevenue) []MonthlyRevenueResponse {
	res := make([]MonthlyRevenueResponse, len(models))
	for i, mod := range models {
		res[i] = MonthlyRevenueResponse{Month: mod.Month.Format(constant.MonthFormat), Revenue: mod.Revenue}
	}

	return res
}
