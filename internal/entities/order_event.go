package entities

import "time"

// OrderEvent факт смены статуса заказа.
type OrderEvent struct {
	ID         string
	OrderID    string
	FromStatus OrderStatusType
	ToStatus   OrderStatusType
	ActorID    string
	ActorRole  ActorRole
	OccurredAt time.Time
}

type NotificationKind string

const (
	NotifyNewOrder      NotificationKind = "new_order"
	NotifyNewAssignment NotificationKind = "new_assignment"
	NotifyOrderAtRisk   NotificationKind = "order_at_risk"
)

func (k NotificationKind) String() string {
	return string(k)
}
