package tx

import (
	"context"
	"errors"
	"time"

	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE, при которых serializable транзакцию можно безопасно повторить целиком.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

const (
	maxAttempts     = 3
	initialInterval = 10 * time.Millisecond
	maxInterval     = 100 * time.Millisecond
	maxElapsedTime  = time.Second
)

type inTxKey struct{}

// Manager serializable транзакции поверх go-transaction-manager.
// Конфликт сериализации повторяется только на внешнем Do: вложенный вызов
// работает в уже открытой транзакции и перезапустить ее не может.
type Manager struct {
	internal *manager.Manager
	retrier  retrierconfig.Retrier
}

func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   0.5,
			Multiplier:      2,
			MaxRetries:      maxAttempts - 1,
			ShouldRetry:     IsSerializationFailure,
		}),
	}
}

// Do выполняет fn в serializable транзакции.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	}

	ctx = context.WithValue(ctx, inTxKey{}, struct{}{})
	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	})
}

// ReadOnly снимок для отчетов, конфликтов сериализации не дает.
func (m *Manager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

// IsSerializationFailure конфликт serializable транзакции или дедлок.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}
