package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"dispatch/internal/entities"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html#23505:~:text=foreign_key_violation-,23505,-unique_violation
const (
	PgErrUniqueViolation     = "23505"
	PgErrForeignKeyViolation = "23503"
	PgErrSerialization       = "40001"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsUnavailable временные ошибки драйвера, после которых запрос можно повторить.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if IsPgErrorWithCode(err, PgErrSerialization) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Wrap оборачивает неожиданную ошибку репозитория, временные помечаются ErrStoreUnavailable.
func Wrap(op string, err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, entities.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
