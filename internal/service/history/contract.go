//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=history_test
package history

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Save(ctx context.Context, event entities.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]entities.OrderEvent, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
}
