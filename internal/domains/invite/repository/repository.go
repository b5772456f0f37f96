package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atelier/infras/otel"
	"atelier/infras/postgres"
	"atelier/internal/domains/invite/model"
	gDto "atelier/shared/dto"
	gRepo "atelier/shared/repository"
)

type Invite interface {
	Insert(ctx context.Context, model model.Invite) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invite, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invite, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Invite]
}

func New(db *postgres.Connection, otel otel.Otel) Invite {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invite](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
