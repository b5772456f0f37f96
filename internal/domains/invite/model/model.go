package model

import (
	"time"

	"atelier/shared/model"
)

const (
	TableName  = "invites"
	EntityName = "invite"

	FieldID         = "id"
	FieldStudioID   = "studio_id"
	FieldCustomerID = "customer_id"
	FieldShortHash  = "short_hash"
	FieldExpiresAt  = "expires_at"
)

type Invite struct {
	ID         string    `db:"id"`
	StudioID   string    `db:"studio_id"`
	CustomerID string    `db:"customer_id"`
	ShortHash  string    `db:"short_hash"`
	ExpiresAt  time.Time `db:"expires_at"`
	model.Metadata
}

// Expired reports whether the invite can no longer be used at the given time.
func (i *Invite) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
