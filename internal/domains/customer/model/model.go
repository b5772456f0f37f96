package model

import "atelier/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID        = "id"
	FieldStudioID  = "studio_id"
	FieldFirstName = "first_name"
	FieldAvatar    = "avatar"
	FieldPhone     = "phone"
	FieldEmail     = "email"
)

type Customer struct {
	ID        string  `db:"id"`
	StudioID  string  `db:"studio_id"`
	FirstName string  `db:"first_name"`
	Avatar    *string `db:"avatar"`
	Phone     *string `db:"phone"`
	Email     *string `db:"email"`
	model.Metadata
}
