package order_event

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Save повторная доставка того же события из брокера ничего не меняет.
func (r *Repository) Save(ctx context.Context, event entities.OrderEvent) error {
	eventDB := FromDomain(&event)

	query := `
		INSERT INTO order_events (id, order_id, from_status, to_status, actor_id, actor_role, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		eventDB.ID,
		eventDB.OrderID,
		eventDB.FromStatus,
		eventDB.ToStatus,
		eventDB.ActorID,
		eventDB.ActorRole,
		eventDB.OccurredAt,
	)
	if err != nil {
		return repository.Wrap("unexpected order event repository save error", err)
	}

	return nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]entities.OrderEvent, error) {
	query := `
		SELECT id, order_id, from_status, to_status, actor_id, actor_role, occurred_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, repository.Wrap("unexpected order event repository list error", err)
	}
	defer rows.Close()

	eventModels := make([]OrderEventDB, 0, 8)
	for rows.Next() {
		var eventDB OrderEventDB
		err := rows.Scan(
			&eventDB.ID,
			&eventDB.OrderID,
			&eventDB.FromStatus,
			&eventDB.ToStatus,
			&eventDB.ActorID,
			&eventDB.ActorRole,
			&eventDB.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order event repository list error: %w", err)
		}
		eventModels = append(eventModels, eventDB)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("unexpected order event repository list error", err)
	}

	return ToDomainList(eventModels), nil
}
