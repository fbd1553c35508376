package retrier

import (
	"context"
	"time"
)

// Retrier повторяет fn, пока она не вернет nil, не кончатся попытки или не отменится ctx.
type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// NotifyFunc вызывается после каждой неудачной попытки перед паузой next.
type NotifyFunc func(attempt uint64, err error, next time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// MaxRetries 0 означает без ограничения по количеству, только по MaxElapsedTime
	MaxRetries uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	OnRetry NotifyFunc
}

// Retryable true, если по конфигу ошибку стоит повторить.
func (c Config) Retryable(err error) bool {
	return c.ShouldRetry == nil || c.ShouldRetry(err)
}
