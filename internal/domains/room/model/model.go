package model

import (
	"hotelbook/shared/model"
	"hotelbook/shared/money"
	"slices"
	"time"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldHotelID    = "hotel_id"
	FieldClassID    = "class_id"
	FieldRoomNumber = "room_number"
	FieldStatus     = "status"
)

const (
	CacheGetRoom       = "room:get"
	CacheGetAllRoom    = "room:gets"
	CacheAvailableRoom = "room:available"
	CacheOccupancy     = "room:occupancy"
)

// CachePrefixes lists every cached room view; any status or booking change invalidates them.
var CachePrefixes = []string{CacheGetRoom, CacheGetAllRoom, CacheAvailableRoom, CacheOccupancy}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusReserved    Status = "reserved"
	StatusMaintenance Status = "maintenance"
)

var statuses = []Status{StatusAvailable, StatusOccupied, StatusReserved, StatusMaintenance}

func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// Bookable reports whether new stays may be placed on a room in this status.
func (s Status) Bookable() bool {
	return s != StatusMaintenance
}

type Room struct {
	ID          int64        `db:"id"           insert:"-"`
	HotelID     int64        `db:"hotel_id"`
	ClassID     int64        `db:"class_id"`
	RoomNumber  string       `db:"room_number"`
	Status      Status       `db:"status"`
	ClassName   string       `db:"class_name"   table:"room_classes" column:"name"`
	NightlyRate money.Amount `db:"nightly_rate" table:"room_classes" column:"nightly_rate"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN room_classes ON room_classes.id = rooms.class_id"
}

type Filter struct {
	HotelID *int64  `json:"hotel_id,omitempty"`
	ClassID *int64  `json:"class_id,omitempty"`
	Status  *Status `json:"status,omitempty"`
}

// AvailabilityQuery selects rooms free for the half-open stay [CheckIn, CheckOut).
type AvailabilityQuery struct {
	HotelID  int64     `json:"hotel_id"`
	ClassID  *int64    `json:"class_id,omitempty"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

type Occupancy struct {
	TotalRooms    int `db:"total_rooms"`
	OccupiedRooms int `db:"occupied_rooms"`
}
