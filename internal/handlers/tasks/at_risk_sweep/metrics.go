package at_risk_sweep

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ordersAtRisk = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "dispatch_orders_at_risk",
		Help: "Active orders close to their pickup or delivery time",
	},
)
