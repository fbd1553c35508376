package evidence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create на заказ допускается одно подтверждение (уникальный order_id).
func (r *Repository) Create(ctx context.Context, evidenceModifyEntity entities.DeliveryEvidenceModify) (*entities.DeliveryEvidence, error) {
	evidenceModel := FromDomainModify(&evidenceModifyEntity)

	query := `
		INSERT INTO delivery_evidence (id, order_id, courier_id, recipient_name, recipient_id_number, signature_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, order_id, courier_id, recipient_name, recipient_id_number, signature_url, notes, created_at
	`

	var evidenceDB EvidenceDB
	err := r.querier.QueryRow(
		ctx,
		query,
		evidenceModel.ID,
		evidenceModel.OrderID,
		evidenceModel.CourierID,
		evidenceModel.RecipientName,
		evidenceModel.RecipientIDNumber,
		evidenceModel.SignatureURL,
		evidenceModel.Notes,
	).Scan(
		&evidenceDB.ID,
		&evidenceDB.OrderID,
		&evidenceDB.CourierID,
		&evidenceDB.RecipientName,
		&evidenceDB.RecipientIDNumber,
		&evidenceDB.SignatureURL,
		&evidenceDB.Notes,
		&evidenceDB.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: evidence for order already exists", entities.ErrConflict)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, repository.Wrap("unexpected evidence repository create error", err)
	}

	return ToDomain(&evidenceDB), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.DeliveryEvidence, error) {
	query := `
		SELECT id, order_id, courier_id, recipient_name, recipient_id_number, signature_url, notes, created_at
		FROM delivery_evidence
		WHERE order_id = $1
	`

	var evidenceDB EvidenceDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&evidenceDB.ID,
		&evidenceDB.OrderID,
		&evidenceDB.CourierID,
		&evidenceDB.RecipientName,
		&evidenceDB.RecipientIDNumber,
		&evidenceDB.SignatureURL,
		&evidenceDB.Notes,
		&evidenceDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrEvidenceNotFound
		}
		return nil, repository.Wrap("unexpected evidence repository get error", err)
	}

	return ToDomain(&evidenceDB), nil
}

// ListByCourier история доставок курьера, новые сверху.
func (r *Repository) ListByCourier(ctx context.Context, courierID string) ([]entities.DeliveryEvidence, error) {
	query := `
		SELECT id, order_id, courier_id, recipient_name, recipient_id_number, signature_url, notes, created_at
		FROM delivery_evidence
		WHERE courier_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, courierID)
	if err != nil {
		return nil, repository.Wrap("unexpected evidence repository list error", err)
	}
	defer rows.Close()

	evidenceModels := make([]EvidenceDB, 0, 8)
	for rows.Next() {
		var evidenceDB EvidenceDB
		err := rows.Scan(
			&evidenceDB.ID,
			&evidenceDB.OrderID,
			&evidenceDB.CourierID,
			&evidenceDB.RecipientName,
			&evidenceDB.RecipientIDNumber,
			&evidenceDB.SignatureURL,
			&evidenceDB.Notes,
			&evidenceDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected evidence repository list error: %w", err)
		}
		evidenceModels = append(evidenceModels, evidenceDB)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("unexpected evidence repository list error", err)
	}

	return ToDomainList(evidenceModels), nil
}

func (r *Repository) CountByCourierSince(ctx context.Context, courierID string, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM delivery_evidence
		WHERE courier_id = $1 AND created_at >= $2
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, courierID, since).Scan(&count); err != nil {
		return 0, repository.Wrap("unexpected evidence repository count error", err)
	}

	return count, nil
}
