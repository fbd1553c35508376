//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=scheduler_test
package scheduler

import (
	"context"

	"dispatch/pkg/logger"
)

// Job задача по расписанию. В отличие от background.Task интервал задает cron выражение.
type Job interface {
	Do(ctx context.Context) error
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
