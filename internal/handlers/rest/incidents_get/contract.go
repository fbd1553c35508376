//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incidents_get_test
package incidents_get

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
	ListIncidents(ctx context.Context, actor entities.Actor, filter entities.IncidentFilter) ([]entities.Incident, error)
}
