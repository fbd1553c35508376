//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_candidates_get_test
package order_candidates_get

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
	Candidates(ctx context.Context, actor entities.Actor, orderID string) ([]entities.Courier, error)
}
