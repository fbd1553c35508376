package gateway

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of gateway retry attempts",
		},
		[]string{"service", "method", "reason"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of gateway requests including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "code"},
	)
)

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

// Execute latency -> attempts -> retrier -> вызов. code переводит ошибку в метку метрики.
func Execute(
	ctx context.Context,
	r retrier,
	service string,
	method string,
	code func(error) string,
	fn func(context.Context) error,
) error {
	var attempt uint64
	start := time.Now()

	err := r.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	label := code(err)
	RequestDuration.WithLabelValues(service, method, label).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		RetriesTotal.WithLabelValues(service, method, label).Inc()
	}

	return err
}
