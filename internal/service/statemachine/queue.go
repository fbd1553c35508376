package statemachine

import "dispatch/internal/entities"

// EffectiveQueue статус заказа для очередей, с учетом инцидентов.
// incident_reported не хранится в заказе, а вычисляется:
//   - есть pending инцидент;
//   - последний инцидент решен как waiting_client и заказ с тех пор не менялся.
func EffectiveQueue(order entities.Order, incidents []entities.Incident) entities.OrderStatusType {
	if order.Status.IsTerminal() {
		return order.Status
	}

	var latest *entities.Incident
	for i := range incidents {
		incident := &incidents[i]
		if incident.OrderID != order.ID {
			continue
		}
		if incident.Status == entities.IncidentPending {
			return entities.OrderIncidentReported
		}
		if latest == nil || incident.CreatedAt.After(latest.CreatedAt) {
			latest = incident
		}
	}

	if latest != nil &&
		latest.Decision != nil && *latest.Decision == entities.DecisionWaitingClient &&
		!order.UpdatedAt.After(latest.UpdatedAt) {
		return entities.OrderIncidentReported
	}

	return order.Status
}

// HasPendingIncident есть ли у заказа нерешенный инцидент.
func HasPendingIncident(orderID string, incidents []entities.Incident) bool {
	for i := range incidents {
		if incidents[i].OrderID == orderID && incidents[i].Status == entities.IncidentPending {
			return true
		}
	}
	return false
}
