package pickup_expiry

import (
	"context"
	"time"

	"pickup/pkg/logger"
)

// PickupExpiry - периодическая автоотмена заявок, на которые аптека не ответила в срок.
type PickupExpiry struct {
	log       taskLogger
	service   Service
	observer  ExpiredObserver
	interval  time.Duration
	batchSize int
}

func NewPickupExpiry(log taskLogger, service Service, observer ExpiredObserver, interval time.Duration, batchSize int) *PickupExpiry {
	return &PickupExpiry{
		log:       log,
		service:   service,
		observer:  observer,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (p *PickupExpiry) TTL() time.Duration {
	return p.interval
}

func (p *PickupExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	expired, skipped, err := p.service.ExpireOverdue(ctxWithTimeout, p.batchSize)

	if p.observer != nil && expired > 0 {
		p.observer.ObserveExpired(expired)
	}
	if expired > 0 || skipped > 0 {
		p.log.With(
			logger.NewField("expired", expired),
			logger.NewField("skipped", skipped),
		).Info("pickup expiry")
	}

	return err
}

func (p *PickupExpiry) Info() string {
	return "pickup expiry"
}
