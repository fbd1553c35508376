package at_risk_sweep

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// AtRiskSweep считает заказы, у которых скоро забор или доставка, и
// уведомляет диспетчеров, если такие есть.
type AtRiskSweep struct {
	log      handlerLogger
	service  Service
	notifier Notifier
	now      func() time.Time
}

func New(log handlerLogger, service Service, notifier Notifier) *AtRiskSweep {
	return &AtRiskSweep{
		log:      log.With(logger.NewField("component", "at-risk-sweep")),
		service:  service,
		notifier: notifier,
		now:      time.Now,
	}
}

func (a *AtRiskSweep) Do(ctx context.Context) error {
	orders, err := a.service.AtRisk(ctx, a.now())
	if err != nil {
		return fmt.Errorf("at risk sweep: %w", err)
	}

	ordersAtRisk.Set(float64(len(orders)))

	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}
	a.log.With(
		logger.NewField("count", len(orders)),
		logger.NewField("orders", ids),
	).Warn("orders at risk")

	a.notifier.Notify(ctx, entities.NotifyOrderAtRisk, len(orders))
	return nil
}

func (a *AtRiskSweep) Info() string {
	return "at risk sweep"
}
