//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=at_risk_sweep_test
package at_risk_sweep

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Service interface {
	AtRisk(ctx context.Context, now time.Time) ([]entities.Order, error)
}

type Notifier interface {
	Notify(ctx context.Context, kind entities.NotificationKind, count int)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
