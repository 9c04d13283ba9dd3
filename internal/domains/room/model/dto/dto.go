package dto

import (
	"hotelbook/internal/domains/room/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/money"
	"math"
	"time"
)

const percent = 100

type CreateRoomRequest struct {
	ClassID    int64  `json:"class_id"    validate:"required,gt=0"`
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	Status     string `json:"status"      validate:"omitempty,oneof=available occupied reserved maintenance"`
}

func (c *CreateRoomRequest) ToModel(hotelID int64, user string, now time.Time) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Room{
		HotelID:    hotelID,
		ClassID:    c.ClassID,
		RoomNumber: c.RoomNumber,
		Status:     status,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied reserved maintenance"`
}

type RoomResponse struct {
	ID          int64        `json:"id"`
	HotelID     int64        `json:"hotel_id"`
	ClassID     int64        `json:"class_id"`
	ClassName   string       `json:"class_name"`
	NightlyRate money.Amount `json:"nightly_rate"`
	RoomNumber  string       `json:"room_number"`
	Status      model.Status `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.ClassID = model.ClassID
	r.ClassName = model.ClassName
	r.NightlyRate = model.NightlyRate
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Rooms = FromModels(models)
}

type OccupancyResponse struct {
	HotelID       *int64  `json:"hotel_id,omitempty"`
	TotalRooms    int     `json:"total_rooms"`
	OccupiedRooms int     `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// FromModel computes the occupancy percentage rounded to two decimals.
func (r *OccupancyResponse) FromModel(hotelID *int64, occupancy model.Occupancy) {
	r.HotelID = hotelID
	r.TotalRooms = occupancy.TotalRooms
	r.OccupiedRooms = occupancy.OccupiedRooms

	if occupancy.TotalRooms > 0 {
		rate := float64(occupancy.OccupiedRooms) / float64(occupancy.TotalRooms) * percent
		r.OccupancyRate = math.Round(rate*percent) / percent
	}
}
