//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=evidence_test
package evidence

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, evidenceModify entities.DeliveryEvidenceModify) (*entities.DeliveryEvidence, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.DeliveryEvidence, error)
	ListByCourier(ctx context.Context, courierID string) ([]entities.DeliveryEvidence, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

type IncidentRepository interface {
	List(ctx context.Context, filter entities.IncidentFilter) ([]entities.Incident, error)
}

// AttachmentStorage хранилище файлов, возвращает публичный URL загруженного объекта.
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
