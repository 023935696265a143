//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=outbox_test
package outbox

import (
	"context"
	"time"

	"pickup/internal/entities"
)

type EventRepository interface {
	// FetchUnpublished блокирует выбранные строки до конца транзакции (FOR UPDATE SKIP LOCKED).
	FetchUnpublished(ctx context.Context, limit uint64) ([]entities.LifecycleEvent, error)
	MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, events []entities.LifecycleEvent) error
}

type TxManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}
