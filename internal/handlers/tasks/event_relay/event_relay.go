package event_relay

import (
	"context"
	"time"

	"pickup/pkg/logger"
)

// EventRelay переносит закоммиченные события жизненного цикла из outbox в Kafka.
type EventRelay struct {
	log       taskLogger
	relay     Relay
	interval  time.Duration
	batchSize int
}

func NewEventRelay(log taskLogger, relay Relay, interval time.Duration, batchSize int) *EventRelay {
	return &EventRelay{
		log:       log,
		relay:     relay,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (e *EventRelay) TTL() time.Duration {
	return e.interval
}

func (e *EventRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.interval)
	defer cancel()

	published, err := e.relay.RelayAll(ctxWithTimeout, e.batchSize)

	if published > 0 {
		e.log.With(
			logger.NewField("published", published),
		).Info("event relay")
	}

	return err
}

func (e *EventRelay) Info() string {
	return "event relay"
}
