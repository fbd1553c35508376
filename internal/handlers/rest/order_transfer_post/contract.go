//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_transfer_post_test
package order_transfer_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Transfer(ctx context.Context, actor entities.Actor, orderID, courierID string) (*entities.Order, error)
}
