package model

import (
	"time"

	"atelier/shared/model"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID              = "id"
	FieldStudioID        = "studio_id"
	FieldTitle           = "title"
	FieldStartsAt        = "starts_at"
	FieldDurationMin     = "duration_min"
	FieldRecurrenceRule  = "recurrence_rule"
	FieldPrice           = "price"
	FieldMinParticipants = "min_participants"
	FieldMaxParticipants = "max_participants"
	FieldForChildren     = "for_children"
	FieldActive          = "active"
)

type Slot struct {
	ID              string    `db:"id"`
	StudioID        string    `db:"studio_id"`
	Title           string    `db:"title"`
	StartsAt        time.Time `db:"starts_at"`
	DurationMin     int       `db:"duration_min"`
	RecurrenceRule  *string   `db:"recurrence_rule"`
	Price           float64   `db:"price"`
	MinParticipants int       `db:"min_participants"`
	MaxParticipants int       `db:"max_participants"`
	ForChildren     bool      `db:"for_children"`
	Active          bool      `db:"active"`
	model.Metadata
}
