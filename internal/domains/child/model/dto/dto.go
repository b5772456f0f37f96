package dto

import (
	"atelier/internal/domains/child/model"
	"atelier/shared"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateChildRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	FirstName  string `json:"first_name"  validate:"required,max=100"`
	Avatar     string `json:"avatar"      validate:"required,max=255"`
}

func (c *CreateChildRequest) ToModel(user string) model.Child {
	return model.Child{
		ID:         uuid.NewString(),
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		Avatar:     c.Avatar,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// InlineChildRequest is the child payload carried inside a booking request,
// where the owning customer is resolved from the booking context.
type InlineChildRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	Avatar    string `json:"avatar"     validate:"required,max=255"`
}

func (c *InlineChildRequest) ToModel(customerID, user string) model.Child {
	return model.Child{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		FirstName:  c.FirstName,
		Avatar:     c.Avatar,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateChildRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	Avatar    string `db:"avatar"     json:"avatar"     validate:"omitempty,max=255"`
}

type ChildResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	StudioID   string `json:"studio_id"`
	FirstName  string `json:"first_name"`
	Avatar     string `json:"avatar"`
	gDto.Metadata
}

func (r *ChildResponse) FromModel(model model.Child) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.StudioID = model.StudioID
	r.FirstName = model.FirstName
	r.Avatar = model.Avatar
	r.Metadata.FromModel(model.Metadata)
}

type GetChildrenResponse struct {
	Children  []ChildResponse `json:"children"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetChildrenResponse) FromModels(models []model.Child, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Children = make([]ChildResponse, len(models))
	for i, mod := range models {
		r.Children[i].FromModel(mod)
	}
}
