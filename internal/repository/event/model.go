package event

import "time"

type EventDB struct {
	ID             int64
	RequestID      string
	PreviousStatus string
	NewStatus      string
	ActorRole      string
	ActorID        int64
	OccurredAt     time.Time
	PublishedAt    *time.Time
}

var eventColumns = []string{
	"id",
	"request_id",
	"previous_status",
	"new_status",
	"actor_role",
	"actor_id",
	"occurred_at",
	"published_at",
}
