package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"pickup/internal/entities"
)

var (
	PickupTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickup_transitions_total",
			Help: "Total number of pickup request transition attempts by outcome",
		},
		[]string{"from", "to", "actor", "result"},
	)

	PickupExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickup_expired_total",
			Help: "Total number of pickup requests auto-canceled by the expiry sweeper",
		},
	)

	BackgroundTaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "background_task_duration_seconds",
			Help:    "Duration of background task runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task", "result"},
	)
)

// Observer пишет доменные метрики. Реализует наблюдателей сервиса заявок
// и фонового воркера.
type Observer struct{}

func NewObserver() *Observer {
	return &Observer{}
}

func (*Observer) ObserveTransition(from, to entities.PickupStatus, role entities.ActorRole, result string) {
	PickupTransitionsTotal.WithLabelValues(from.String(), to.String(), role.String(), result).Inc()
}

func (*Observer) ObserveRun(task string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BackgroundTaskDuration.WithLabelValues(task, result).Observe(duration.Seconds())
}

func (*Observer) ObserveExpired(n int) {
	PickupExpiredTotal.Add(float64(n))
}
