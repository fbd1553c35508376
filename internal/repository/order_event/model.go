package order_event

import "time"

type OrderEventDB struct {
	ID         string
	OrderID    string
	FromStatus string
	ToStatus   string
	ActorID    string
	ActorRole  string
	OccurredAt time.Time
}
