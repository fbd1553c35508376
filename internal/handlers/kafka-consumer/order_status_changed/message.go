package order_status_changed

import (
	"time"

	"dispatch/internal/entities"
)

// statusChangedEvent формат сообщения, который пишет publisher заказа.
type statusChangedEvent struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e statusChangedEvent) toEntity() entities.OrderEvent {
	return entities.OrderEvent{
		ID:         e.ID,
		OrderID:    e.OrderID,
		FromStatus: entities.OrderStatusType(e.FromStatus),
		ToStatus:   entities.OrderStatusType(e.ToStatus),
		ActorID:    e.ActorID,
		ActorRole:  entities.ActorRole(e.ActorRole),
		OccurredAt: e.OccurredAt,
	}
}
