package model

import "atelier/shared/model"

const (
	TableName  = "children"
	EntityName = "child"

	FieldID         = "id"
	FieldCustomerID = "customer_id"
	FieldFirstName  = "first_name"
	FieldAvatar     = "avatar"
	FieldStudioID   = "studio_id"
)

type Child struct {
	ID         string `db:"id"`
	CustomerID string `db:"customer_id"`
	FirstName  string `db:"first_name"`
	Avatar     string `db:"avatar"`

	// StudioID comes from the owning customer via the join below; it is never
	// written on the children table itself.
	StudioID string `db:"studio_id" table:"customers"`
	model.Metadata
}

func (Child) GetJoinQuery() string {
	return "JOIN customers ON customers.id = children.customer_id"
}
