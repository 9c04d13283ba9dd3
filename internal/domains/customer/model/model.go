package model

import "hotelbook/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID    = "id"
	FieldEmail = "email"
)

// Customer is a guest. Email is unique when present; walk-in guests may have none and
// are identified by Proof instead.
type Customer struct {
	ID         int64  `db:"id"          insert:"-"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Mobile     string `db:"mobile"`
	Proof      string `db:"proof"`
	AccountRef string `db:"account_ref"`
	model.Metadata
}
