package outbox

import (
	"context"
	"fmt"
)

const defaultBatch = 100

// Relay переносит закоммиченные события журнала во внешний брокер.
// Доставка at-least-once: если брокер принял пачку, а отметка о публикации
// не записалась, пачка уйдёт повторно.
type Relay struct {
	events    EventRepository
	publisher Publisher
	txManager TxManager
	clock     Clock
}

func New(events EventRepository, publisher Publisher, txManager TxManager, clock Clock) *Relay {
	return &Relay{
		events:    events,
		publisher: publisher,
		txManager: txManager,
		clock:     clock,
	}
}

// RelayBatch публикует одну пачку неопубликованных событий и возвращает их количество.
func (r *Relay) RelayBatch(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultBatch
	}

	published := 0
	err := r.txManager.DoReadCommitted(ctx, func(ctx context.Context) error {
		events, err := r.events.FetchUnpublished(ctx, uint64(batchSize))
		if err != nil {
			return fmt.Errorf("fetch unpublished events: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := r.publisher.Publish(ctx, events); err != nil {
			return fmt.Errorf("%w: %w", ErrPublish, err)
		}

		ids := make([]int64, len(events))
		for i, event := range events {
			ids[i] = event.ID
		}
		if err := r.events.MarkPublished(ctx, ids, r.clock.Now().UTC()); err != nil {
			return fmt.Errorf("mark events published: %w", err)
		}

		published = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return published, nil
}

// RelayAll публикует пачки, пока очередь не опустеет или не кончится ctx.
func (r *Relay) RelayAll(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultBatch
	}

	total := 0
	for {
		n, err := r.RelayBatch(ctx, batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < batchSize {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}
