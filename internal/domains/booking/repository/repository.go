package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atelier/infras/otel"
	"atelier/infras/postgres"
	"atelier/internal/domains/booking/model"
	"atelier/shared/constant"
	gDto "atelier/shared/dto"
	"atelier/shared/logger"
	gRepo "atelier/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertGuarded(ctx context.Context, model model.Booking, maxParticipants int) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// insertGuardedQuery only inserts while the slot still has capacity left. The
// count subquery and the insert run in one statement, so two racing requests
// cannot both slip past a full slot. Bookings of every status are counted, to
// match the capacity policy used by reads.
const insertGuardedQuery = `
	INSERT INTO bookings (id, slot_id, customer_id, child_id, status, paid, paid_at, paid_method, created_at, modified_at, created_by, modified_by)
	SELECT :id, :slot_id, :customer_id, :child_id, :status, :paid, :paid_at, :paid_method, :created_at, :modified_at, :created_by, :modified_by
	WHERE (SELECT COUNT(*) FROM bookings WHERE slot_id = :slot_id) < :max_participants`

func (repo *repositoryImpl) InsertGuarded(ctx context.Context, mod model.Booking, maxParticipants int) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertGuarded", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, insertGuardedQuery)

	args := map[string]any{
		"id":               mod.ID,
		"slot_id":          mod.SlotID,
		"customer_id":      mod.CustomerID,
		"child_id":         mod.ChildID,
		"status":           mod.Status,
		"paid":             mod.Paid,
		"paid_at":          mod.PaidAt,
		"paid_method":      mod.PaidMethod,
		"created_at":       mod.CreatedAt,
		"modified_at":      mod.ModifiedAt,
		"created_by":       mod.CreatedBy,
		"modified_by":      mod.ModifiedBy,
		"max_participants": maxParticipants,
	}

	result, err := repo.db.Write.NamedExecContext(ctx, insertGuardedQuery, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
