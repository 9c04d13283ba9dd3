package dto

import (
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/money"
	"strings"
	"time"
)

type CreateHotelRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Type        string `json:"type"        validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateHotelRequest) ToModel(user string, now time.Time) model.Hotel {
	return model.Hotel{
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

// UpdateHotelRequest edits a hotel. Omitted fields keep their value.
type UpdateHotelRequest struct {
	Name        string `json:"name"        validate:"omitempty,max=100"`
	Type        string `json:"type"        validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (u *UpdateHotelRequest) ToPatch() model.HotelPatch {
	return model.HotelPatch{
		Name:        strings.TrimSpace(u.Name),
		Type:        strings.TrimSpace(u.Type),
		Description: strings.TrimSpace(u.Description),
	}
}

type HotelResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

type CreateRoomClassRequest struct {
	Name        string       `json:"name"         validate:"required,max=50"`
	NightlyRate money.Amount `json:"nightly_rate" validate:"gte=0"`
	RoomCount   int          `json:"room_count"   validate:"gte=0"`
}

func (c *CreateRoomClassRequest) ToModel(hotelID int64, user string, now time.Time) model.RoomClass {
	return model.RoomClass{
		HotelID:     hotelID,
		Name:        c.Name,
		NightlyRate: c.NightlyRate,
		RoomCount:   c.RoomCount,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type RoomClassResponse struct {
	ID          int64        `json:"id"`
	HotelID     int64        `json:"hotel_id"`
	Name        string       `json:"name"`
	NightlyRate money.Amount `json:"nightly_rate"`
	RoomCount   int          `json:"room_count"`
}

func (r *RoomClassResponse) FromModel(model model.RoomClass) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.NightlyRate = model.NightlyRate
	r.RoomCount = model.RoomCount
}

func FromRoomClasses(models []model.RoomClass) []RoomClassResponse {
	res := make([]RoomClassResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
