//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=assignment_test
package assignment

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

type CourierRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Courier, error)
	List(ctx context.Context, filter entities.CourierFilter) ([]entities.Courier, error)
}

type IncidentRepository interface {
	List(ctx context.Context, filter entities.IncidentFilter) ([]entities.Incident, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
