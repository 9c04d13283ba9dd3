package model

import (
	"hotelbook/shared/model"
	"hotelbook/shared/money"
)

const (
	TableHotel  = "hotels"
	EntityHotel = "hotel"

	TableRoomClass  = "room_classes"
	EntityRoomClass = "room_class"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldName        = "name"
	FieldType        = "type"
	FieldNightlyRate = "nightly_rate"
	FieldRoomCount   = "room_count"
)

const (
	CacheGetHotel      = "hotel:get"
	CacheGetAllHotel   = "hotel:gets"
	CacheListRoomClass = "class:list"
)

type Hotel struct {
	ID          int64  `db:"id"          insert:"-"`
	Name        string `db:"name"`
	Type        string `db:"type"`
	Description string `db:"description"`
	model.Metadata
}

// HotelPatch names the hotel columns to overwrite. Zero fields are left as they are.
type HotelPatch struct {
	Name        string `db:"name"`
	Type        string `db:"type"`
	Description string `db:"description"`
}

func (p HotelPatch) Empty() bool { return p == HotelPatch{} }

// Apply copies the set fields onto hotel.
func (p HotelPatch) Apply(hotel *Hotel) {
	if p.Name != "" {
		hotel.Name = p.Name
	}

	if p.Type != "" {
		hotel.Type = p.Type
	}

	if p.Description != "" {
		hotel.Description = p.Description
	}
}

// RoomClass prices rooms. RoomCount is a capacity hint for the class.
type RoomClass struct {
	ID          int64        `db:"id"           insert:"-"`
	HotelID     int64        `db:"hotel_id"`
	Name        string       `db:"name"`
	NightlyRate money.Amount `db:"nightly_rate"`
	RoomCount   int          `db:"room_count"`
	model.Metadata
}
