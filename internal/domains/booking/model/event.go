package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated    EventType = "booking.created"
	EventBookingAssigned   EventType = "booking.assigned"
	EventBookingConfirmed  EventType = "booking.confirmed"
	EventBookingCheckedIn  EventType = "booking.checked_in"
	EventBookingCheckedOut EventType = "booking.checked_out"
	EventBookingCancelled  EventType = "booking.cancelled"
	EventWalkInCheckedIn   EventType = "booking.walk_in"
)

// Event is published on the booking lifecycle topic after a unit of work commits.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	BookingID  int64     `json:"booking_id"`
	HotelID    int64     `json:"hotel_id"`
	RoomID     *int64    `json:"room_id,omitempty"`
	Status     Status    `json:"status"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType EventType, booking Booking, actor string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		HotelID:    booking.HotelID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
		Actor:      actor,
		OccurredAt: at,
	}
}
