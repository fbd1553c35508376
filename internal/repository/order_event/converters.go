package order_event

import "dispatch/internal/entities"

func ToDomain(e *OrderEventDB) *entities.OrderEvent {
	if e == nil {
		return nil
	}
	return &entities.OrderEvent{
		ID:         e.ID,
		OrderID:    e.OrderID,
		FromStatus: entities.OrderStatusType(e.FromStatus),
		ToStatus:   entities.OrderStatusType(e.ToStatus),
		ActorID:    e.ActorID,
		ActorRole:  entities.ActorRole(e.ActorRole),
		OccurredAt: e.OccurredAt,
	}
}

func FromDomain(e *entities.OrderEvent) *OrderEventDB {
	if e == nil {
		return nil
	}
	return &OrderEventDB{
		ID:         e.ID,
		OrderID:    e.OrderID,
		FromStatus: e.FromStatus.String(),
		ToStatus:   e.ToStatus.String(),
		ActorID:    e.ActorID,
		ActorRole:  e.ActorRole.String(),
		OccurredAt: e.OccurredAt,
	}
}

func ToDomainList(eventsDB []OrderEventDB) []entities.OrderEvent {
	if len(eventsDB) == 0 {
		return []entities.OrderEvent{}
	}

	result := make([]entities.OrderEvent, len(eventsDB))
	for i, e := range eventsDB {
		result[i] = *ToDomain(&e)
	}
	return result
}
