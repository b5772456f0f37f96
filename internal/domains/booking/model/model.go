package model

import (
	"time"

	"atelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldSlotID     = "slot_id"
	FieldCustomerID = "customer_id"
	FieldChildID    = "child_id"
	FieldStatus     = "status"
	FieldPaid       = "paid"
	FieldPaidAt     = "paid_at"
	FieldPaidMethod = "paid_method"
	FieldStudioID   = "studio_id"
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
)

const (
	PaidMethodCash     = "cash"
	PaidMethodBit      = "bit"
	PaidMethodPaybox   = "paybox"
	PaidMethodTransfer = "transfer"
)

type Booking struct {
	ID         string     `db:"id"`
	SlotID     string     `db:"slot_id"`
	CustomerID *string    `db:"customer_id"`
	ChildID    *string    `db:"child_id"`
	Status     string     `db:"status"`
	Paid       bool       `db:"paid"`
	PaidAt     *time.Time `db:"paid_at"`
	PaidMethod *string    `db:"paid_method"`

	// StudioID is resolved from the booked slot via the join below; bookings
	// themselves are tenant-scoped only transitively.
	StudioID string `db:"studio_id" table:"slots"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN slots ON slots.id = bookings.slot_id"
}
