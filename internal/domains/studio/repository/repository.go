package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atelier/infras/otel"
	"atelier/infras/postgres"
	"atelier/internal/domains/studio/model"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/logger"
	gRepo "atelier/shared/repository"
)

type Studio interface {
	Insert(ctx context.Context, model model.Studio) error
	InsertWithOwner(ctx context.Context, model model.Studio, userID string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Studio, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Studio, error)
	IsOwner(ctx context.Context, studioID, userID string) (bool, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Studio]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Studio {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Studio](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const insertOwnerQuery = `INSERT INTO studio_owners (studio_id, user_id) VALUES (:studio_id, :user_id)`

// InsertWithOwner persists the studio and its owning user in one transaction,
// so a studio can never exist without an owner row.
func (repo *repositoryImpl) InsertWithOwner(ctx context.Context, mod model.Studio, userID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertWithOwner", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	if err = repo.InsertTx(ctx, tx, mod); err != nil {
		scope.TraceError(err)

		_ = tx.Rollback()

		return err
	}

	owner := model.Owner{StudioID: mod.ID, UserID: userID}
	if _, err = tx.NamedExecContext(ctx, insertOwnerQuery, owner); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		_ = tx.Rollback()

		return fmt.Errorf("failed to insert studio owner: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

const isOwnerQuery = `SELECT EXISTS(SELECT 1 FROM studio_owners WHERE studio_id = :studio_id AND user_id = :user_id)`

func (repo *repositoryImpl) IsOwner(ctx context.Context, studioID, userID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.IsOwner", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, isOwnerQuery)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, isOwnerQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	exist := false

	err = prepare.GetContext(ctx, &exist, map[string]any{"studio_id": studioID, "user_id": userID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check studio owner: %w", err)
	}

	return exist, nil
}
