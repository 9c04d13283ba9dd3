package dto

import (
	"hotelbook/internal/domains/audit/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/timezone"
)

type AuditLogResponse struct {
	ID        int64  `json:"id"`
	EventType string `json:"event_type"`
	EventDesc string `json:"event_desc"`
	BookingID *int64 `json:"booking_id,omitempty"`
	Actor     string `json:"actor,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (r *AuditLogResponse) FromModel(model model.AuditLog) {
	r.ID = model.ID
	r.EventType = model.EventType
	r.EventDesc = model.EventDesc
	r.BookingID = model.BookingID
	r.Actor = model.Actor
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetAuditLogsResponse) FromModels(models []model.AuditLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.AuditLogs = make([]AuditLogResponse, len(models))
	for i, mod := range models {
		r.AuditLogs[i].FromModel(mod)
	}
}
