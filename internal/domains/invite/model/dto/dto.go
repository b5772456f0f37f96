package dto

import (
	"time"

	"atelier/internal/domains/invite/model"
	"atelier/shared"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	gModel "atelier/shared/model"
	"atelier/shared/timezone"

	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	StudioID   string `json:"studio_id"   validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
}

func (c *CreateInviteRequest) ToModel(shortHash, user string, expiresAt time.Time) model.Invite {
	return model.Invite{
		ID:         uuid.NewString(),
		StudioID:   c.StudioID,
		CustomerID: c.CustomerID,
		ShortHash:  shortHash,
		ExpiresAt:  expiresAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type InviteResponse struct {
	ID         string `json:"id"`
	StudioID   string `json:"studio_id"`
	CustomerID string `json:"customer_id"`
	ShortHash  string `json:"short_hash"`
	ExpiresAt  string `json:"expires_at"`
	gDto.Metadata
}

func (r *InviteResponse) FromModel(model model.Invite) {
	r.ID = model.ID
	r.StudioID = model.StudioID
	r.CustomerID = model.CustomerID
	r.ShortHash = model.ShortHash
	r.ExpiresAt = timezone.Format(model.ExpiresAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetInvitesResponse struct {
	Invites   []InviteResponse `json:"invites"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetInvitesResponse) FromModels(models []model.Invite, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invites = make([]InviteResponse, len(models))
	for i, mod := range models {
		r.Invites[i].FromModel(mod)
	}
}
