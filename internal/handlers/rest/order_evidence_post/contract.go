//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_evidence_post_test
package order_evidence_post

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
	FinalizeDelivery(ctx context.Context, actor entities.Actor, proof entities.DeliveryProof) (*entities.DeliveryEvidence, error)
}
