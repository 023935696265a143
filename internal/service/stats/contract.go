//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stats_test
package stats

import (
	"context"
	"time"

	"pickup/internal/entities"
	"pickup/pkg/logger"
)

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}

type Repository interface {
	CountByStatus(ctx context.Context, pharmacyID int64) (map[entities.PickupStatus]int64, error)
	CountCompleted(ctx context.Context, pharmacyID int64, windows entities.CompletionWindows, now time.Time) (entities.CompletionCounts, error)
}

// Cache - необязательный кэш готовых агрегатов. Пустая строка без ошибки - промах.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation, key string) string
}

type Clock interface {
	Now() time.Time
}
