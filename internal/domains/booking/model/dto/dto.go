package dto

import (
	"time"

	"atelier/internal/domains/booking/model"
	childDto "atelier/internal/domains/child/model/dto"
	"atelier/shared"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID     string                       `json:"slot_id"     validate:"required"`
	CustomerID string                       `json:"customer_id" validate:"omitempty"`
	ChildID    string                       `json:"child_id"    validate:"omitempty"`
	ChildData  *childDto.InlineChildRequest `json:"child_data"  validate:"omitempty"`
}

// InviteBookingRequest is the unauthenticated variant; the customer is fixed
// by the invite, so only the slot and an optional child are carried.
type InviteBookingRequest struct {
	SlotID  string                       `json:"slot_id"  validate:"required"`
	ChildID string                       `json:"child_id" validate:"omitempty"`
	Child   *childDto.InlineChildRequest `json:"child"    validate:"omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CANCELLED NO_SHOW"`
}

type RecordPaymentRequest struct {
	PaidMethod string `json:"paid_method" validate:"required,oneof=cash bit paybox transfer"`
	PaidAt     string `json:"paid_at"     validate:"omitempty"`
}

// ParsePaidAt returns the supplied payment time, defaulting to now.
func (r *RecordPaymentRequest) ParsePaidAt() (time.Time, error) {
	if r.PaidAt == "" {
		return timezone.Now(), nil
	}

	return time.Parse(constant.DateFormat, r.PaidAt)
}

// NewBooking builds the row persisted for a freshly validated reservation.
// Exactly one of customerID/childID must be non-nil; the caller resolves that.
func NewBooking(slotID string, customerID, childID *string, user string) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		SlotID:     slotID,
		CustomerID: customerID,
		ChildID:    childID,
		Status:     model.StatusConfirmed,
		Paid:       false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID         string  `json:"id"`
	SlotID     string  `json:"slot_id"`
	StudioID   string  `json:"studio_id"`
	CustomerID string  `json:"customer_id,omitempty"`
	ChildID    string  `json:"child_id,omitempty"`
	Status     string  `json:"status"`
	Paid       bool    `json:"paid"`
	PaidAt     string  `json:"paid_at,omitempty"`
	PaidMethod string  `json:"paid_method,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.SlotID = model.SlotID
	r.StudioID = model.StudioID

	if model.CustomerID != nil {
		r.CustomerID = *model.CustomerID
	}

	if model.ChildID != nil {
		r.ChildID = *model.ChildID
	}

	r.Status = model.Status
	r.Paid = model.Paid

	if model.PaidAt != nil {
		r.PaidAt = timezone.Format(*model.PaidAt, constant.DateFormat)
	}

	if model.PaidMethod != nil {
		r.PaidMethod = *model.PaidMethod
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
