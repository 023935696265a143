package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	clientKindActor = "actor"
	clientKindAddr  = "addr"
)

// RateLimitExceededTotal - отклоненные запросы. client_kind показывает, по какому
// ключу сработал лимит: идентификатор участника или адрес клиента.
var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pickup_rate_limit_exceeded_total",
		Help: "Requests rejected by the per-client rate limiter",
	},
	[]string{"method", "route", "client_kind"},
)
