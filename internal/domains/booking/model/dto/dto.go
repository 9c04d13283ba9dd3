package dto

import (
	"hotelbook/internal/domains/booking/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/money"
	"hotelbook/shared/timezone"
)

type CreateBookingRequest struct {
	Email         string       `json:"email"          validate:"omitempty,email,max=100"`
	Name          string       `json:"name"           validate:"omitempty,max=100"`
	Mobile        string       `json:"mobile"         validate:"omitempty,max=20"`
	HotelID       int64        `json:"hotel_id"       validate:"required,gt=0"`
	RoomID        *int64       `json:"room_id"        validate:"omitempty,gt=0"`
	CheckIn       string       `json:"check_in"       validate:"required,date"`
	CheckOut      string       `json:"check_out"      validate:"required,date,after=CheckIn"`
	BookingType   string       `json:"booking_type"   validate:"omitempty,oneof=single double family"`
	Description   string       `json:"description"    validate:"omitempty,max=255"`
	PaymentAmount money.Amount `json:"payment_amount" validate:"gte=0"`
	PaymentMethod string       `json:"payment_method" validate:"omitempty,oneof=cash card upi bank_transfer"`
}

// WalkInRequest carries the legacy check-in call. Dates are validated by the engine so that
// an inverted range is answered with its status code rather than a 400.
type WalkInRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	Proof       string `json:"proof"        validate:"required,max=100"`
	CheckIn     string `json:"check_in"     validate:"required"`
	CheckOut    string `json:"check_out"    validate:"required"`
	RoomNumber  string `json:"room_number"  validate:"required,max=20"`
	HotelID     *int64 `json:"hotel_id"     validate:"omitempty,gt=0"`
	BookingType string `json:"booking_type" validate:"omitempty,oneof=single double family"`
}

type AssignRoomRequest struct {
	RoomID int64 `json:"room_id" validate:"required,gt=0"`
}

type ConfirmRequest struct {
	RoomID *int64 `json:"room_id" validate:"omitempty,gt=0"`
}

type CreateBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// CodeResponse is the legacy check-in answer: a booking id or a negative status code.
type CodeResponse struct {
	Code int64 `json:"code"`
}

type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	HotelID       int64   `json:"hotel_id"`
	RoomID        *int64  `json:"room_id,omitempty"`
	RoomNumber    *string `json:"room_number,omitempty"`
	BookDate      string  `json:"book_date"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int64   `json:"nights"`
	BookingType   string  `json:"booking_type"`
	Status        string  `json:"status"`
	Description   string  `json:"description,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.HotelID = model.HotelID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.BookDate = timezone.FormatDate(model.BookDate)
	r.CheckIn = timezone.FormatDate(model.CheckIn)
	r.CheckOut = timezone.FormatDate(model.CheckOut)
	r.Nights = timezone.Nights(model.CheckIn, model.CheckOut)
	r.BookingType = string(model.BookingType)
	r.Status = string(model.Status)
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
