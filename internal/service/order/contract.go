//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter entities.OrderFilter, updatedSince *time.Time) (int64, error)
}

type IncidentRepository interface {
	List(ctx context.Context, filter entities.IncidentFilter) ([]entities.Incident, error)
	Update(ctx context.Context, incidentModify entities.IncidentModify) (*entities.Incident, error)
}

type CourierRepository interface {
	CountEligible(ctx context.Context) (int64, error)
}

type EvidenceRepository interface {
	CountByCourierSince(ctx context.Context, courierID string, since time.Time) (int64, error)
}

type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (string, error)
	Complete(ctx context.Context, key string, orderID string) error
	Release(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
