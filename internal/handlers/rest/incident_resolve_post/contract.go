//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=incident_resolve_post_test
package incident_resolve_post

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
	Resolve(ctx context.Context, actor entities.Actor, resolution entities.IncidentResolution) (*entities.Incident, error)
}
