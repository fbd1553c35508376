//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_test
package courier

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entities.Courier, error)
	List(ctx context.Context, filter entities.CourierFilter) ([]entities.Courier, error)
	UpdatePresence(ctx context.Context, id string, presence entities.CourierPresenceType) (*entities.Courier, error)
}
