package dto

import (
	"atelier/internal/domains/customer/model"
	"atelier/shared"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	StudioID  string `json:"studio_id"  validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	Avatar    string `json:"avatar"     validate:"omitempty,max=255"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
	Email     string `json:"email"      validate:"omitempty,email,max=100"`
}

// HasContact reports whether at least one contact channel was supplied.
func (c *CreateCustomerRequest) HasContact() bool {
	return c.Phone != "" || c.Email != ""
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:        uuid.NewString(),
		StudioID:  c.StudioID,
		FirstName: c.FirstName,
		Avatar:    optional(c.Avatar),
		Phone:     optional(c.Phone),
		Email:     optional(c.Email),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	Avatar    string `db:"avatar"     json:"avatar"     validate:"omitempty,max=255"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	StudioID  string `json:"studio_id"`
	FirstName string `json:"first_name"`
	Avatar    string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.StudioID = model.StudioID
	r.FirstName = model.FirstName
	r.Avatar = deref(model.Avatar)
	r.Phone = deref(model.Phone)
	r.Email = deref(model.Email)
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
