package dto

import (
	"hotelbook/internal/domains/customer/model"
	"hotelbook/shared"
	gModel "hotelbook/shared/model"
	"strings"
	"time"
)

// ResolveRequest identifies a guest by email; the other fields are used only when the
// guest is seen for the first time.
type ResolveRequest struct {
	Name       string
	Email      string
	Mobile     string
	AccountRef string
}

func (r *ResolveRequest) ToModel(user string, now time.Time) model.Customer {
	name := r.Name
	if name == "" {
		name, _, _ = strings.Cut(r.Email, "@")
	}

	return model.Customer{
		Name:       name,
		Email:      shared.NormalizeEmail(r.Email),
		Mobile:     r.Mobile,
		AccountRef: r.AccountRef,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type WalkInRequest struct {
	Name  string
	Proof string
}

func (r *WalkInRequest) ToModel(user string, now time.Time) model.Customer {
	return model.Customer{
		Name:     r.Name,
		Proof:    r.Proof,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type CustomerResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Mobile = model.Mobile
}
