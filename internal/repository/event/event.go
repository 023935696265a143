package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"pickup/internal/entities"
	"pickup/internal/repository"
	"pickup/internal/service/pickup"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const tableEvents = "pickup_request_events"

// Repository - журнал переходов заявок. Неопубликованные строки журнала
// служат outbox'ом для relay в kafka.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Append(ctx context.Context, event entities.LifecycleEvent) error {
	m := FromDomain(&event)

	query, args, err := qb.
		Insert(tableEvents).
		Columns("request_id", "previous_status", "new_status", "actor_role", "actor_id", "occurred_at").
		Values(m.RequestID, m.PreviousStatus, m.NewStatus, m.ActorRole, m.ActorID, m.OccurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected event repository append error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsConcurrentUpdate(err) {
			return fmt.Errorf("append event: %w: %w", pickup.ErrConflict, err)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return pickup.ErrNotFound
		}
		return fmt.Errorf("unexpected event repository append error: %w: %w", pickup.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Repository) ListByRequestID(ctx context.Context, requestID string) ([]entities.LifecycleEvent, error) {
	query, args, err := qb.
		Select(eventColumns...).
		From(tableEvents).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list error: %w", err)
	}

	events, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list error: %w: %w", pickup.ErrStoreUnavailable, err)
	}
	return events, nil
}

// FetchUnpublished блокирует выбранные строки до конца транзакции;
// параллельные relay пропускают их и берут следующие.
func (r *Repository) FetchUnpublished(ctx context.Context, limit uint64) ([]entities.LifecycleEvent, error) {
	query, args, err := qb.
		Select(eventColumns...).
		From(tableEvents).
		Where(sq.Eq{"published_at": nil}).
		OrderBy("id").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository fetch unpublished error: %w", err)
	}

	events, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository fetch unpublished error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := qb.
		Update(tableEvents).
		Set("published_at", publishedAt).
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"published_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected event repository mark published error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected event repository mark published error: %w", err)
	}
	return nil
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) ([]entities.LifecycleEvent, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	models, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (EventDB, error) {
		var m EventDB
		err := row.Scan(
			&m.ID,
			&m.RequestID,
			&m.PreviousStatus,
			&m.NewStatus,
			&m.ActorRole,
			&m.ActorID,
			&m.OccurredAt,
			&m.PublishedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, err
	}

	events := make([]entities.LifecycleEvent, len(models))
	for i := range models {
		events[i] = ToDomain(&models[i])
	}
	return events, nil
}
