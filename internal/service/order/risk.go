package order

import (
	"time"

	"dispatch/internal/entities"
)

const (
	pickupRiskWindow   = 15 * time.Minute
	deliveryRiskWindow = 12 * time.Minute
)

func isNearPickup(order entities.Order, now time.Time) bool {
	switch order.Status {
	case entities.OrderInTransit, entities.OrderDelivered, entities.OrderCancelled:
		return false
	}
	left := order.PickupAt.Sub(now)
	return left > 0 && left <= pickupRiskWindow
}

func isNearDelivery(order entities.Order, now time.Time) bool {
	if order.Status.IsTerminal() {
		return false
	}
	left := order.DeliveryAt.Sub(now)
	return left > 0 && left <= deliveryRiskWindow
}

// IsAtRisk заказ скоро должен быть забран или доставлен.
func IsAtRisk(order entities.Order, now time.Time) bool {
	return isNearPickup(order, now) || isNearDelivery(order, now)
}
