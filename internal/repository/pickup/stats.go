package pickup

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"pickup/internal/entities"
)

func (r *Repository) CountByStatus(ctx context.Context, pharmacyID int64) (map[entities.PickupStatus]int64, error) {
	query, args, err := qb.
		Select("status", "COUNT(*)").
		From(tableRequests).
		Where(sq.Eq{"pharmacy_id": pharmacyID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pickup repository count by status error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, unexpected("count by status", err)
	}
	defer rows.Close()

	counts := make(map[entities.PickupStatus]int64, len(entities.AllStatuses()))
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, unexpected("count by status", err)
		}
		counts[entities.PickupStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, unexpected("count by status", err)
	}

	return counts, nil
}

// CountCompleted считает завершения в окнах [start, now] одним проходом по индексу (pharmacy_id, completed_at).
func (r *Repository) CountCompleted(
	ctx context.Context,
	pharmacyID int64,
	windows entities.CompletionWindows,
	now time.Time,
) (entities.CompletionCounts, error) {
	earliest := windows.MonthStart
	if windows.WeekStart.Before(earliest) {
		earliest = windows.WeekStart
	}

	query, args, err := qb.
		Select().
		Column(sq.Expr("COUNT(*) FILTER (WHERE completed_at >= ?)", windows.DayStart)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE completed_at >= ?)", windows.WeekStart)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE completed_at >= ?)", windows.MonthStart)).
		From(tableRequests).
		Where(sq.Eq{"pharmacy_id": pharmacyID}).
		Where(sq.GtOrEq{"completed_at": earliest}).
		Where(sq.LtOrEq{"completed_at": now}).
		ToSql()
	if err != nil {
		return entities.CompletionCounts{}, fmt.Errorf("unexpected pickup repository count completed error: %w", err)
	}

	var counts entities.CompletionCounts
	err = r.querier.QueryRow(ctx, query, args...).Scan(&counts.Today, &counts.Week, &counts.Month)
	if err != nil {
		return entities.CompletionCounts{}, unexpected("count completed", err)
	}
	return counts, nil
}
