package model

import "time"

const (
	TableName  = "audit_logs"
	EntityName = "audit log"

	FieldID        = "id"
	FieldEventType = "event_type"
	FieldBookingID = "booking_id"
	FieldCreatedAt = "created_at"
)

const CacheGetAllAuditLog = "audit:gets"

// AuditLog is append-only. EventID makes redelivered events idempotent.
type AuditLog struct {
	ID        int64     `db:"id"         insert:"-"`
	EventID   string    `db:"event_id"`
	EventType string    `db:"event_type"`
	EventDesc string    `db:"event_desc"`
	BookingID *int64    `db:"booking_id"`
	Actor     string    `db:"actor"`
	CreatedAt time.Time `db:"created_at"`
}

type Filter struct {
	EventType *string `json:"event_type,omitempty"`
	BookingID *int64  `json:"booking_id,omitempty"`
}
