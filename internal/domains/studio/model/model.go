package model

import "atelier/shared/model"

const (
	TableName  = "studios"
	EntityName = "studio"

	FieldID       = "id"
	FieldSlug     = "slug"
	FieldName     = "name"
	FieldTimezone = "timezone"
	FieldCurrency = "currency"
)

const (
	OwnersTableName   = "studio_owners"
	OwnersFieldUserID = "user_id"
	OwnersFieldStudio = "studio_id"
)

type Studio struct {
	ID       string `db:"id"`
	Slug     string `db:"slug"`
	Name     string `db:"name"`
	Timezone string `db:"timezone"`
	Currency string `db:"currency"`
	model.Metadata
}

// Owner links a studio to the user account that administers it.
type Owner struct {
	StudioID string `db:"studio_id"`
	UserID   string `db:"user_id"`
}
