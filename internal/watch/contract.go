//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=watch_test
package watch

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// OrderSource отдает идентификаторы заказов, видимых актору при фильтре.
type OrderSource interface {
	ListOrderIDs(ctx context.Context, filter entities.OrderFilter) ([]string, error)
}

// Notifier приемник уведомлений. Без подтверждения и повторов.
type Notifier interface {
	Notify(ctx context.Context, kind entities.NotificationKind, count int)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
