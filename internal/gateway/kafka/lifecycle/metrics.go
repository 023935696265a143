package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_publish_retries_total",
			Help: "Total number of lifecycle publish calls that needed retries",
		},
		[]string{"topic", "reason"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifecycle_publish_duration_seconds",
			Help:    "Duration of lifecycle batch publish including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"topic", "result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_events_published_total",
			Help: "Total number of lifecycle events handed to the broker",
		},
		[]string{"result"},
	)
)
