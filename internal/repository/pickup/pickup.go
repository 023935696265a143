package pickup

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"pickup/internal/entities"
	"pickup/internal/repository"
	"pickup/internal/service/pickup"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	tableRequests  = "pickup_requests"
	tableLineItems = "pickup_line_items"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create пишет заявку и её позиции. Вызывается внутри транзакции сервиса,
// поэтому строки заявки и позиций появляются атомарно.
func (r *Repository) Create(ctx context.Context, request entities.PickupRequest) error {
	m := FromDomain(&request)

	query, args, err := qb.
		Insert(tableRequests).
		Columns(requestColumns...).
		Values(
			m.ID,
			m.CustomerID,
			m.PharmacyID,
			m.Status,
			m.Version,
			m.CustomerMemo,
			m.PharmacyMemo,
			m.RejectionReason,
			m.CancelReason,
			m.CanceledBy,
			m.TotalAmount,
			m.EstimatedPickupDate,
			m.RequestedAt,
			m.AcceptedAt,
			m.PreparedAt,
			m.ReadyAt,
			m.CompletedAt,
			m.RejectedAt,
			m.CanceledAt,
			m.AutoCancelDeadline,
			m.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected pickup repository create error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("create", err)
	}

	batch := &pgx.Batch{}
	for _, item := range FromDomainLineItems(request.ID, request.LineItems) {
		query, args, err := qb.
			Insert(tableLineItems).
			Columns(lineItemColumns...).
			Values(
				item.RequestID,
				item.Position,
				item.CategoryID,
				item.CategoryName,
				item.ProductName,
				item.Manufacturer,
				item.Quantity,
				item.PetName,
				item.PetType,
				item.Note,
				item.UnitPrice,
				item.TotalPrice,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("unexpected pickup repository create error: %w", err)
		}
		batch.Queue(query, args...)
	}

	if err := r.execBatch(ctx, batch); err != nil {
		return mapWriteError("create line items", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.PickupRequest, error) {
	query, args, err := qb.
		Select(requestColumns...).
		From(tableRequests).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pickup repository getbyid error: %w", err)
	}

	m, err := scanRequest(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pickup.ErrNotFound
		}
		return nil, unexpected("getbyid", err)
	}

	items, err := r.lineItems(ctx, []string{id})
	if err != nil {
		return nil, unexpected("getbyid line items", err)
	}

	return ToDomain(m, items[id]), nil
}

func (r *Repository) List(ctx context.Context, filter entities.PickupRequestFilter) ([]entities.PickupRequest, error) {
	builder := qb.
		Select(requestColumns...).
		From(tableRequests).
		OrderBy("requested_at DESC", "id ASC")

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.PharmacyID != nil {
		builder = builder.Where(sq.Eq{"pharmacy_id": *filter.PharmacyID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pickup repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, unexpected("list", err)
	}
	defer rows.Close()

	models := make([]*PickupRequestDB, 0, 8)
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, unexpected("list", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unexpected("list", err)
	}

	if len(models) == 0 {
		return []entities.PickupRequest{}, nil
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	items, err := r.lineItems(ctx, ids)
	if err != nil {
		return nil, unexpected("list line items", err)
	}

	result := make([]entities.PickupRequest, len(models))
	for i, m := range models {
		result[i] = *ToDomain(m, items[m.ID])
	}
	return result, nil
}

// ApplyTransition - условная запись: строка обновится, только если статус
// и версия не поменялись с момента чтения.
func (r *Repository) ApplyTransition(
	ctx context.Context,
	updated entities.PickupRequest,
	expectedStatus entities.PickupStatus,
	expectedVersion int64,
) error {
	m := FromDomain(&updated)

	query, args, err := qb.
		Update(tableRequests).
		SetMap(map[string]interface{}{
			"status":                m.Status,
			"version":               m.Version,
			"pharmacy_memo":         m.PharmacyMemo,
			"rejection_reason":      m.RejectionReason,
			"cancel_reason":         m.CancelReason,
			"canceled_by":           m.CanceledBy,
			"total_amount":          m.TotalAmount,
			"estimated_pickup_date": m.EstimatedPickupDate,
			"accepted_at":           m.AcceptedAt,
			"prepared_at":           m.PreparedAt,
			"ready_at":              m.ReadyAt,
			"completed_at":          m.CompletedAt,
			"rejected_at":           m.RejectedAt,
			"canceled_at":           m.CanceledAt,
			"updated_at":            m.UpdatedAt,
		}).
		Where(sq.Eq{
			"id":      m.ID,
			"status":  expectedStatus.String(),
			"version": expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected pickup repository apply transition error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("apply transition", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, m.ID)
		if err != nil {
			return unexpected("apply transition", err)
		}
		if !exists {
			return pickup.ErrNotFound
		}
		return fmt.Errorf("%w: expected %s v%d", pickup.ErrConflict, expectedStatus, expectedVersion)
	}

	if updated.Status != entities.StatusAccepted {
		return nil
	}

	// цены позиций проставляются только при подтверждении
	batch := &pgx.Batch{}
	for _, item := range updated.LineItems {
		query, args, err := qb.
			Update(tableLineItems).
			Set("unit_price", item.UnitPrice).
			Set("total_price", item.TotalPrice).
			Where(sq.Eq{"request_id": updated.ID, "position": item.Position}).
			ToSql()
		if err != nil {
			return fmt.Errorf("unexpected pickup repository apply transition error: %w", err)
		}
		batch.Queue(query, args...)
	}

	if err := r.execBatch(ctx, batch); err != nil {
		return mapWriteError("apply transition prices", err)
	}
	return nil
}

// ListExpired - страница просроченных REQUESTED/WAITING заявок в порядке
// (auto_cancel_deadline, id), начиная строго после курсора.
func (r *Repository) ListExpired(
	ctx context.Context,
	now time.Time,
	after *entities.ExpiryCandidate,
	limit uint64,
) ([]entities.ExpiryCandidate, error) {
	builder := qb.
		Select("id", "auto_cancel_deadline").
		From(tableRequests).
		Where(sq.Eq{"status": []string{
			entities.StatusRequested.String(),
			entities.StatusWaiting.String(),
		}}).
		Where(sq.LtOrEq{"auto_cancel_deadline": now}).
		OrderBy("auto_cancel_deadline ASC", "id ASC").
		Limit(limit)

	if after != nil {
		builder = builder.Where(
			sq.Expr("(auto_cancel_deadline, id) > (?, ?)", after.AutoCancelDeadline, after.ID),
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pickup repository list expired error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, unexpected("list expired", err)
	}
	defer rows.Close()

	candidates := make([]entities.ExpiryCandidate, 0, limit)
	for rows.Next() {
		var c entities.ExpiryCandidate
		if err := rows.Scan(&c.ID, &c.AutoCancelDeadline); err != nil {
			return nil, unexpected("list expired", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unexpected("list expired", err)
	}

	return candidates, nil
}

func (r *Repository) lineItems(ctx context.Context, requestIDs []string) (map[string][]LineItemDB, error) {
	query, args, err := qb.
		Select(lineItemColumns...).
		From(tableLineItems).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("request_id", "position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]LineItemDB, len(requestIDs))
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.RequestID] = append(result[item.RequestID], item)
	}
	return result, rows.Err()
}

func (r *Repository) exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pickup_requests WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *Repository) execBatch(ctx context.Context, batch *pgx.Batch) (err error) {
	if batch.Len() == 0 {
		return nil
	}

	results := r.querier.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func mapWriteError(op string, err error) error {
	switch {
	case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation):
		return fmt.Errorf("%s: %w: %w", op, pickup.ErrConflict, err)
	case repository.IsConcurrentUpdate(err):
		return fmt.Errorf("%s: %w: %w", op, pickup.ErrConflict, err)
	case repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation),
		repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation):
		return fmt.Errorf("%s: %w: %w", op, pickup.ErrInvalidInput, err)
	default:
		return unexpected(op, err)
	}
}

func unexpected(op string, err error) error {
	return fmt.Errorf("unexpected pickup repository %s error: %w: %w", op, pickup.ErrStoreUnavailable, err)
}
