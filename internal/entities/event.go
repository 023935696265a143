package entities

import "time"

// LifecycleEvent - запись журнала переходов, она же outbox для уведомлений.
// У события создания PreviousStatus пустой.
type LifecycleEvent struct {
	ID             int64
	RequestID      string
	PreviousStatus PickupStatus
	NewStatus      PickupStatus
	ActorRole      ActorRole
	ActorID        int64
	OccurredAt     time.Time
	PublishedAt    *time.Time
}
