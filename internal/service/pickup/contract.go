//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_test
package pickup

import (
	"context"
	"time"

	"pickup/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, request entities.PickupRequest) error
	GetByID(ctx context.Context, id string) (*entities.PickupRequest, error)
	List(ctx context.Context, filter entities.PickupRequestFilter) ([]entities.PickupRequest, error)

	// ApplyTransition записывает новое состояние заявки, только если в хранилище
	// всё ещё лежат expectedStatus и expectedVersion. Иначе ErrConflict.
	ApplyTransition(ctx context.Context, updated entities.PickupRequest, expectedStatus entities.PickupStatus, expectedVersion int64) error

	ListExpired(ctx context.Context, now time.Time, after *entities.ExpiryCandidate, limit uint64) ([]entities.ExpiryCandidate, error)
}

type EventRepository interface {
	Append(ctx context.Context, event entities.LifecycleEvent) error
	ListByRequestID(ctx context.Context, requestID string) ([]entities.LifecycleEvent, error)
}

type DeadlineFactory interface {
	CalculateDeadline(estimatedDays int, requestedAt time.Time) (time.Time, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

type TransitionObserver interface {
	ObserveTransition(from, to entities.PickupStatus, role entities.ActorRole, result string)
}
