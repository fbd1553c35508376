//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incident_test
package incident

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, incidentModify entities.IncidentModify) (*entities.Incident, error)
	GetByID(ctx context.Context, id string) (*entities.Incident, error)
	List(ctx context.Context, filter entities.IncidentFilter) ([]entities.Incident, error)
	Update(ctx context.Context, incidentModify entities.IncidentModify) (*entities.Incident, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

// Reassigner переназначение курьера внутри транзакции решения.
type Reassigner interface {
	Reassign(ctx context.Context, order *entities.Order, courierID string) (*entities.Order, error)
}

type AttachmentStorage interface {
	Upload(ctx context.Context, key string, contentType string, body []byte) (string, error)
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
