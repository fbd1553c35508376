package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitExceededTotal без адреса клиента в лейблах, иначе кардинальность не ограничена.
var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dispatch",
		Name:      "rate_limit_exceeded_total",
		Help:      "Total number of requests rejected by the per-client rate limiter",
	},
	[]string{"method", "route"},
)
