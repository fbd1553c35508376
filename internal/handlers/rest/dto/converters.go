package dto

import (
	"dispatch/internal/entities"
)

func FromOrderView(view entities.OrderView) Order {
	order := FromOrder(&view.Order)
	if view.EffectiveStatus != "" {
		order.EffectiveStatus = view.EffectiveStatus.String()
	}
	return order
}

// FromOrder для ответов без списка инцидентов, effective_status совпадает с хранимым.
func FromOrder(order *entities.Order) Order {
	return Order{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		SenderID:           order.SenderID,
		CourierID:          order.CourierID,
		PickupAddress:      order.PickupAddress,
		PickupPostalCode:   order.PickupPostalCode,
		DeliveryAddress:    order.DeliveryAddress,
		DeliveryPostalCode: order.DeliveryPostalCode,
		RecipientName:      order.RecipientName,
		RecipientPhone:     order.RecipientPhone,
		PickupAt:           order.PickupAt,
		DeliveryAt:         order.DeliveryAt,
		Notes:              order.Notes,
		Status:             order.Status.String(),
		EffectiveStatus:    order.Status.String(),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func FromOrderViews(views []entities.OrderView) OrderList {
	orders := make([]Order, len(views))
	for i, view := range views {
		orders[i] = FromOrderView(view)
	}
	return OrderList{Orders: orders}
}

func (r CreateOrderRequest) ToDraft() entities.OrderDraft {
	return entities.OrderDraft{
		SenderID:           r.SenderID,
		PickupAddress:      r.PickupAddress,
		PickupPostalCode:   r.PickupPostalCode,
		DeliveryAddress:    r.DeliveryAddress,
		DeliveryPostalCode: r.DeliveryPostalCode,
		RecipientName:      r.RecipientName,
		RecipientPhone:     r.RecipientPhone,
		PickupAt:           r.PickupAt,
		DeliveryAt:         r.DeliveryAt,
		Notes:              r.Notes,
	}
}

func FromCourier(courier *entities.Courier) Courier {
	return Courier{
		ID:       courier.ID,
		Name:     courier.Name,
		Phone:    courier.Phone,
		Active:   courier.Active,
		Presence: courier.Presence.String(),
	}
}

func FromCouriers(couriers []entities.Courier) CourierList {
	res := make([]Courier, len(couriers))
	for i := range couriers {
		res[i] = FromCourier(&couriers[i])
	}
	return CourierList{Couriers: res}
}

func FromEvidence(evidence *entities.DeliveryEvidence) Evidence {
	return Evidence{
		ID:                evidence.ID,
		OrderID:           evidence.OrderID,
		CourierID:         evidence.CourierID,
		RecipientName:     evidence.RecipientName,
		RecipientIDNumber: evidence.RecipientIDNumber,
		SignatureURL:      evidence.SignatureURL,
		Notes:             evidence.Notes,
		CreatedAt:         evidence.CreatedAt,
	}
}

func FromEvidenceList(list []entities.DeliveryEvidence) EvidenceList {
	res := make([]Evidence, len(list))
	for i := range list {
		res[i] = FromEvidence(&list[i])
	}
	return EvidenceList{Evidence: res}
}

func FromIncident(incident *entities.Incident) Incident {
	res := Incident{
		ID:                  incident.ID,
		OrderID:             incident.OrderID,
		CourierID:           incident.CourierID,
		Type:                incident.Type.String(),
		Description:         incident.Description,
		PhotoURL:            incident.PhotoURL,
		Status:              incident.Status.String(),
		OrderStatusAtReport: incident.OrderStatusAtReport.String(),
		AdminNotes:          incident.AdminNotes,
		NewCourierID:        incident.NewCourierID,
		ResolvedBy:          incident.ResolvedBy,
		CreatedAt:           incident.CreatedAt,
		UpdatedAt:           incident.UpdatedAt,
	}
	if incident.Decision != nil {
		decision := incident.Decision.String()
		res.Decision = &decision
	}
	return res
}

func FromIncidents(incidents []entities.Incident) IncidentList {
	res := make([]Incident, len(incidents))
	for i := range incidents {
		res[i] = FromIncident(&incidents[i])
	}
	return IncidentList{Incidents: res}
}

func FromOrderEvents(events []entities.OrderEvent) OrderEventList {
	res := make([]OrderEvent, len(events))
	for i, event := range events {
		res[i] = OrderEvent{
			ID:         event.ID,
			OrderID:    event.OrderID,
			FromStatus: event.FromStatus.String(),
			ToStatus:   event.ToStatus.String(),
			ActorID:    event.ActorID,
			ActorRole:  event.ActorRole.String(),
			OccurredAt: event.OccurredAt,
		}
	}
	return OrderEventList{Events: res}
}

func FromStats(stats *entities.Stats) Stats {
	res := Stats{Role: stats.Role.String()}
	switch {
	case stats.Dispatcher != nil:
		res.ActiveOrders = &stats.Dispatcher.ActiveOrders
		res.ActiveCouriers = &stats.Dispatcher.ActiveCouriers
		res.DeliveredToday = &stats.Dispatcher.DeliveredToday
	case stats.Sender != nil:
		res.Total = &stats.Sender.Total
		res.Active = &stats.Sender.Active
		res.Completed = &stats.Sender.Completed
	case stats.Courier != nil:
		res.Assigned = &stats.Courier.Assigned
		res.CompletedToday = &stats.Courier.CompletedToday
		res.InTransit = &stats.Courier.InTransit
	}
	return res
}
