package model

import (
	"hotelbook/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldCustomerID  = "customer_id"
	FieldHotelID     = "hotel_id"
	FieldRoomID      = "room_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldBookingType = "booking_type"
)

const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
)

type BookingType string

const (
	BookingTypeSingle BookingType = "single"
	BookingTypeDouble BookingType = "double"
	BookingTypeFamily BookingType = "family"
)

type Booking struct {
	ID          int64       `db:"id"             insert:"-"`
	CustomerID  int64       `db:"customer_id"`
	HotelID     int64       `db:"hotel_id"`
	RoomID      *int64      `db:"room_id"`
	BookDate    time.Time   `db:"book_date"`
	CheckIn     time.Time   `db:"check_in"`
	CheckOut    time.Time   `db:"check_out"`
	BookingType BookingType `db:"booking_type"`
	Status      Status      `db:"status"`
	Description string      `db:"description"`

	CustomerName  string  `db:"customer_name"  table:"customers" column:"name"`
	CustomerEmail string  `db:"customer_email" table:"customers" column:"email"`
	RoomNumber    *string `db:"room_number"    table:"rooms"     column:"room_number"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN customers ON customers.id = bookings.customer_id LEFT JOIN rooms ON rooms.id = bookings.room_id"
}

// Overlaps reports whether the half-open stays [CheckIn, CheckOut) intersect.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}

func (b Booking) OnRoom(roomID int64) bool {
	return b.RoomID != nil && *b.RoomID == roomID
}

type Filter struct {
	CustomerID    *int64  `json:"customer_id,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	HotelID       *int64  `json:"hotel_id,omitempty"`
	RoomID        *int64  `json:"room_id,omitempty"`
	Status        *Status `json:"status,omitempty"`
}

// OverlapQuery asks for active bookings on a room that intersect a stay. ExcludeID skips
// the booking being moved through its own lifecycle.
type OverlapQuery struct {
	RoomID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	ExcludeID int64
}
