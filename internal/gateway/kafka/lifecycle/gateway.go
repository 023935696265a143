package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"pickup/internal/entities"
	retrierconfig "pickup/pkg/retrier"
	"pickup/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Publisher отправляет события журнала в kafka. Ключ сообщения - id заявки.
type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Publisher {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Publisher{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, events []entities.LifecycleEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs, err := toProducerMessages(p.topic, events)
	if err != nil {
		return fmt.Errorf("gateway lifecycle, build messages: %w", err)
	}

	err = p.executeWithMetrics(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return p.producer.SendMessages(msgs)
	})
	if err != nil {
		EventsPublishedTotal.WithLabelValues("error").Add(float64(len(events)))
		return fmt.Errorf("gateway lifecycle, send %d events: %w", len(events), err)
	}

	EventsPublishedTotal.WithLabelValues("ok").Add(float64(len(events)))
	return nil
}

// retryable ошибки брокера: лидер переезжает или кластер временно недоступен.
var retryableErrors = []error{
	sarama.ErrOutOfBrokers,
	sarama.ErrNotConnected,
	sarama.ErrLeaderNotAvailable,
	sarama.ErrNotLeaderForPartition,
	sarama.ErrRequestTimedOut,
	sarama.ErrNotEnoughReplicas,
	sarama.ErrNotEnoughReplicasAfterAppend,
	sarama.ErrNetworkException,
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var producerErrs sarama.ProducerErrors
	if errors.As(err, &producerErrs) {
		for _, pe := range producerErrs {
			if isRetryable(pe.Err) {
				return true
			}
		}
		return false
	}

	for _, target := range retryableErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (p *Publisher) executeWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	reason := errorReason(err)
	PublishDuration.WithLabelValues(p.topic, reason).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(p.topic, reason).Inc()
	}

	return err
}

func errorReason(err error) string {
	if err == nil {
		return "ok"
	}

	var producerErrs sarama.ProducerErrors
	if errors.As(err, &producerErrs) && len(producerErrs) > 0 {
		err = producerErrs[0].Err
	}

	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return kerr.Error()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "context"
	}
	return "unknown"
}
