package dto

import (
	"time"

	"atelier/internal/domains/slot/model"
	"atelier/shared"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	StudioID        string  `json:"studio_id"        validate:"required"`
	Title           string  `json:"title"            validate:"required,max=120"`
	StartsAt        string  `json:"starts_at"        validate:"required"`
	DurationMin     int     `json:"duration_min"     validate:"required,min=1,max=1440"`
	RecurrenceRule  string  `json:"recurrence_rule"  validate:"omitempty,max=255"`
	Price           float64 `json:"price"            validate:"omitempty,min=0"`
	MinParticipants int     `json:"min_participants" validate:"omitempty,min=0"`
	MaxParticipants int     `json:"max_participants" validate:"required,min=1,gtefield=MinParticipants"`
	ForChildren     bool    `json:"for_children"`
	Active          *bool   `json:"active"           validate:"omitempty"`
}

func (c *CreateSlotRequest) ToModel(user string) (model.Slot, error) {
	startsAt, err := time.Parse(constant.DateFormat, c.StartsAt)
	if err != nil {
		return model.Slot{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	var rule *string
	if c.RecurrenceRule != "" {
		rule = &c.RecurrenceRule
	}

	return model.Slot{
		ID:              uuid.NewString(),
		StudioID:        c.StudioID,
		Title:           c.Title,
		StartsAt:        startsAt,
		DurationMin:     c.DurationMin,
		RecurrenceRule:  rule,
		Price:           c.Price,
		MinParticipants: c.MinParticipants,
		MaxParticipants: c.MaxParticipants,
		ForChildren:     c.ForChildren,
		Active:          active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateSlotRequest struct {
	Title          string  `db:"title"           json:"title"           validate:"omitempty,max=120"`
	StartsAt       string  `json:"starts_at"     validate:"omitempty"`
	DurationMin    int     `db:"duration_min"    json:"duration_min"    validate:"omitempty,min=1,max=1440"`
	RecurrenceRule string  `db:"recurrence_rule" json:"recurrence_rule" validate:"omitempty,max=255"`
	Price          float64 `db:"price"           json:"price"           validate:"omitempty,min=0"`
	Active         *bool   `db:"active"          json:"active"          validate:"omitempty"`
}

type SlotResponse struct {
	ID              string  `json:"id"`
	StudioID        string  `json:"studio_id"`
	Title           string  `json:"title"`
	StartsAt        string  `json:"starts_at"`
	DurationMin     int     `json:"duration_min"`
	RecurrenceRule  string  `json:"recurrence_rule,omitempty"`
	Price           float64 `json:"price"`
	MinParticipants int     `json:"min_participants"`
	MaxParticipants int     `json:"max_participants"`
	ForChildren     bool    `json:"for_children"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(model model.Slot) {
	r.ID = model.ID
	r.StudioID = model.StudioID
	r.Title = model.Title
	r.StartsAt = timezone.Format(model.StartsAt, constant.DateFormat)
	r.DurationMin = model.DurationMin

	if model.RecurrenceRule != nil {
		r.RecurrenceRule = *model.RecurrenceRule
	}

	r.Price = model.Price
	r.MinParticipants = model.MinParticipants
	r.MaxParticipants = model.MaxParticipants
	r.ForChildren = model.ForChildren
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSlotsResponse) FromModels(models []model.Slot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		r.Slots[i].FromModel(mod)
	}
}
