package dto

import (
	"atelier/internal/domains/studio/model"
	"atelier/shared"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateStudioRequest struct {
	Slug     string `json:"slug"     validate:"required,min=2,max=60,lowercase,excludesall=/ "`
	Name     string `json:"name"     validate:"required,max=100"`
	Timezone string `json:"timezone" validate:"required,max=60"`
	Currency string `json:"currency" validate:"required,len=3,alpha,uppercase"`
}

func (c *CreateStudioRequest) ToModel(user string) model.Studio {
	return model.Studio{
		ID:       uuid.NewString(),
		Slug:     c.Slug,
		Name:     c.Name,
		Timezone: c.Timezone,
		Currency: c.Currency,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type StudioResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
	gDto.Metadata
}

func (r *StudioResponse) FromModel(model model.Studio) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Name = model.Name
	r.Timezone = model.Timezone
	r.Currency = model.Currency
	r.Metadata.FromModel(model.Metadata)
}

type GetStudiosResponse struct {
	Studios   []StudioResponse `json:"studios"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetStudiosResponse) FromModels(models []model.Studio, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Studios = make([]StudioResponse, len(models))
	for i, mod := range models {
		r.Studios[i].FromModel(mod)
	}
}
