package dto

import (
	"hotelbook/shared/constant"
	"hotelbook/shared/model"
	"hotelbook/shared/timezone"
	"time"
)

// Metadata is the audit stamp echoed on inventory responses. Unset fields are omitted.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(stamp model.Metadata) {
	m.CreatedAt = formatStamp(stamp.CreatedAt)
	m.ModifiedAt = formatStamp(stamp.ModifiedAt)
	m.CreatedBy = stamp.CreatedBy
	m.ModifiedBy = stamp.ModifiedBy
}

func formatStamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}

	return timezone.Format(at, constant.DateFormat)
}
