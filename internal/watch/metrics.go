package watch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "watch_notifications_total",
		Help: "Total number of change notifications emitted by the order watcher",
	},
	[]string{"kind"},
)
