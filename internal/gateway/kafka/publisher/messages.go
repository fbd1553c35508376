package publisher

import (
	"time"

	"dispatch/internal/entities"
)

type orderEventMessage struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

func fromOrderEvent(event entities.OrderEvent) orderEventMessage {
	return orderEventMessage{
		ID:         event.ID,
		OrderID:    event.OrderID,
		FromStatus: event.FromStatus.String(),
		ToStatus:   event.ToStatus.String(),
		ActorID:    event.ActorID,
		ActorRole:  event.ActorRole.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
}

type notificationMessage struct {
	Kind     string    `json:"kind"`
	Count    int       `json:"count"`
	Audience string    `json:"audience,omitempty"`
	SentAt   time.Time `json:"sent_at"`
}
