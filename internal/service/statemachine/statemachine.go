package statemachine

import (
	"fmt"
	"slices"
	"time"

	"dispatch/internal/entities"

	"github.com/google/uuid"
)

// Gate операция, через которую разрешено проходить ребро.
type Gate int

const (
	GateNone       Gate = iota // прямой transition
	GateAssignment             // назначение / переназначение курьера
	GateEvidence               // подтверждение доставки
	GateIncident               // сообщение об инциденте
)

type edge struct {
	roles []entities.ActorRole
	gate  Gate
}

var (
	dispatcherOnly = []entities.ActorRole{entities.RoleDispatcher}
	courierOnly    = []entities.ActorRole{entities.RoleCourier}
	forwardRoles   = []entities.ActorRole{entities.RoleCourier, entities.RoleDispatcher}
)

var transitions = map[entities.OrderStatusType]map[entities.OrderStatusType]edge{
	entities.OrderPending: {
		entities.OrderAssigned:  {roles: dispatcherOnly, gate: GateAssignment},
		entities.OrderCancelled: {roles: dispatcherOnly},
	},
	entities.OrderAssigned: {
		entities.OrderGoingToPickup: {roles: forwardRoles},
		entities.OrderCancelled:     {roles: dispatcherOnly},
	},
	entities.OrderGoingToPickup: {
		entities.OrderInTransit:        {roles: forwardRoles},
		entities.OrderIncidentReported: {roles: courierOnly, gate: GateIncident},
		entities.OrderCancelled:        {roles: dispatcherOnly},
	},
	entities.OrderInTransit: {
		entities.OrderDelivered:        {roles: courierOnly, gate: GateEvidence},
		entities.OrderIncidentReported: {roles: courierOnly, gate: GateIncident},
		entities.OrderCancelled:        {roles: dispatcherOnly},
	},
	entities.OrderIncidentReported: {
		entities.OrderGoingToPickup: {roles: dispatcherOnly},
		entities.OrderInTransit:     {roles: dispatcherOnly},
		entities.OrderAssigned:      {roles: dispatcherOnly, gate: GateAssignment},
		entities.OrderCancelled:     {roles: dispatcherOnly},
	},
	entities.OrderDelivered: {},
	entities.OrderCancelled: {},
}

// Successors допустимые следующие статусы, без учета роли.
func Successors(from entities.OrderStatusType) []entities.OrderStatusType {
	edges := transitions[from]
	result := make([]entities.OrderStatusType, 0, len(edges))
	for to := range edges {
		result = append(result, to)
	}
	slices.Sort(result)
	return result
}

func CanTransition(from, to entities.OrderStatusType) bool {
	_, ok := transitions[from][to]
	return ok
}

// Check проверяет ребро from -> to для роли и операции via.
func Check(from, to entities.OrderStatusType, role entities.ActorRole, via Gate) error {
	if !from.IsValid() || !to.IsValid() {
		return ErrUnknownStatus
	}

	e, ok := transitions[from][to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, from, to)
	}

	if e.gate != via {
		return fmt.Errorf("%w: %s -> %s", ErrGateRequired, from, to)
	}

	if !slices.Contains(e.roles, role) {
		return fmt.Errorf("%w: %s may not move order %s -> %s", entities.ErrForbidden, role, from, to)
	}

	return nil
}

// Patch изменение заказа при переходе в статус to.
// Терминальные статусы снимают курьера.
func Patch(orderID string, to entities.OrderStatusType) entities.OrderModify {
	modify := entities.OrderModify{
		ID:     &orderID,
		Status: &to,
	}
	if to.IsTerminal() {
		modify.ClearCourier = true
	}
	return modify
}

func NewEvent(orderID string, from, to entities.OrderStatusType, actor entities.Actor, at time.Time) entities.OrderEvent {
	return entities.OrderEvent{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		OccurredAt: at,
	}
}
