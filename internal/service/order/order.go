package order

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/statemachine"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

const maxOrderNumberAttempts = 5

type Service struct {
	repository  Repository
	incidents   IncidentRepository
	couriers    CourierRepository
	evidence    EvidenceRepository
	idempotency IdempotencyStore
	publisher   EventPublisher
	txManager   TxManager
	log         serviceLogger
}

func New(
	repository Repository,
	incidents IncidentRepository,
	couriers CourierRepository,
	evidence EvidenceRepository,
	idempotency IdempotencyStore,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		repository:  repository,
		incidents:   incidents,
		couriers:    couriers,
		evidence:    evidence,
		idempotency: idempotency,
		publisher:   publisher,
		txManager:   txManager,
		log:         log.With(logger.NewField("component", "order-service")),
	}
}

// CreateOrder создает заказ в pending. Повтор с тем же idempotencyKey вернет уже созданный заказ.
func (s *Service) CreateOrder(ctx context.Context, actor entities.Actor, draft entities.OrderDraft, idempotencyKey string) (*entities.Order, error) {
	switch actor.Role {
	case entities.RoleSender:
		draft.SenderID = actor.ID
	case entities.RoleDispatcher:
	default:
		return nil, fmt.Errorf("%w: %s may not create orders", entities.ErrForbidden, actor.Role)
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		return s.createWithUniqueNumber(ctx, draft)
	}

	// ключ клиента действует только в пределах его учетной записи
	key := actor.ID + ":" + idempotencyKey
	existingID, err := s.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if existingID != "" {
		existing, err := s.repository.GetByID(ctx, existingID)
		if err != nil {
			return nil, err
		}
		if err := canView(actor, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	order, err := s.createWithUniqueNumber(ctx, draft)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
			s.log.Warn("release idempotency key", logger.NewField("error", releaseErr))
		}
		return nil, err
	}

	if err := s.idempotency.Complete(ctx, key, order.ID); err != nil {
		s.log.Warn("complete idempotency key",
			logger.NewField("order", order.ID),
			logger.NewField("error", err),
		)
	}

	return order, nil
}

func (s *Service) createWithUniqueNumber(ctx context.Context, draft entities.OrderDraft) (*entities.Order, error) {
	status := entities.OrderPending

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := newOrderNumber()
		if err != nil {
			return nil, fmt.Errorf("generate order number: %w", err)
		}

		id := uuid.NewString()
		order, err := s.repository.Create(ctx, entities.OrderModify{
			ID:                 &id,
			OrderNumber:        &number,
			SenderID:           &draft.SenderID,
			PickupAddress:      &draft.PickupAddress,
			PickupPostalCode:   &draft.PickupPostalCode,
			DeliveryAddress:    &draft.DeliveryAddress,
			DeliveryPostalCode: &draft.DeliveryPostalCode,
			RecipientName:      &draft.RecipientName,
			RecipientPhone:     &draft.RecipientPhone,
			PickupAt:           &draft.PickupAt,
			DeliveryAt:         &draft.DeliveryAt,
			Notes:              &draft.Notes,
			Status:             &status,
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, entities.ErrConflict) {
			return nil, fmt.Errorf("create order: %w", err)
		}
	}

	return nil, ErrOrderNumberExhausted
}

func (s *Service) GetOrder(ctx context.Context, actor entities.Actor, id string) (*entities.OrderView, error) {
	if !isValidOrderID(id) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := canView(actor, order); err != nil {
		return nil, err
	}

	views, err := s.withEffectiveStatus(ctx, []entities.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListOrders отправитель и курьер видят только свои заказы.
func (s *Service) ListOrders(ctx context.Context, actor entities.Actor, filter entities.OrderFilter) ([]entities.OrderView, error) {
	switch actor.Role {
	case entities.RoleSender:
		filter.SenderID = &actor.ID
	case entities.RoleCourier:
		filter.CourierID = &actor.ID
	case entities.RoleDispatcher:
	default:
		return nil, entities.ErrForbidden
	}

	wanted := filter.Statuses
	if filter.Group != "" {
		statuses, ok := filter.Group.Statuses()
		if !ok {
			return nil, ErrInvalidStatusGroup
		}
		wanted = statuses
		filter.Group = ""
	}
	filter.Statuses = storedStatuses(wanted)

	orders, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	views, err := s.withEffectiveStatus(ctx, orders)
	if err != nil {
		return nil, err
	}
	if len(wanted) == 0 {
		return views, nil
	}

	filtered := make([]entities.OrderView, 0, len(views))
	for _, view := range views {
		if slices.Contains(wanted, view.EffectiveStatus) {
			filtered = append(filtered, view)
		}
	}
	return filtered, nil
}

// storedStatuses хранимые статусы, из которых может получиться нужный статус очереди.
// incident_reported в базе не лежит, под ним прячется любой активный заказ.
func storedStatuses(wanted []entities.OrderStatusType) []entities.OrderStatusType {
	if len(wanted) == 0 {
		return nil
	}

	stored := make([]entities.OrderStatusType, 0, len(wanted)+len(entities.ActiveStatuses))
	for _, status := range wanted {
		if status != entities.OrderIncidentReported {
			stored = append(stored, status)
		}
	}
	if slices.Contains(wanted, entities.OrderIncidentReported) {
		for _, status := range entities.ActiveStatuses {
			if !slices.Contains(stored, status) {
				stored = append(stored, status)
			}
		}
	}
	return stored
}

func (s *Service) DeleteOrder(ctx context.Context, actor entities.Actor, id string) error {
	if !actor.Is(entities.RoleDispatcher) {
		return fmt.Errorf("%w: only dispatcher may delete orders", entities.ErrForbidden)
	}
	if !isValidOrderID(id) {
		return ErrInvalidOrderID
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// Transition прямой переход статуса. Назначение, доставка и инциденты
// идут через свои операции.
func (s *Service) Transition(ctx context.Context, actor entities.Actor, id string, target entities.OrderStatusType) (*entities.OrderView, error) {
	if !isValidOrderID(id) {
		return nil, ErrInvalidOrderID
	}
	if !target.IsValid() {
		return nil, statemachine.ErrUnknownStatus
	}
	if actor.Is(entities.RoleSender) {
		return nil, fmt.Errorf("%w: senders may not change order status", entities.ErrForbidden)
	}

	var (
		updated *entities.Order
		from    entities.OrderStatusType
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if actor.Is(entities.RoleCourier) && !isAssignedTo(order, actor.ID) {
			return fmt.Errorf("%w: order is not assigned to courier", entities.ErrForbidden)
		}

		incidents, err := s.incidents.List(ctx, entities.IncidentFilter{OrderIDs: []string{id}})
		if err != nil {
			return fmt.Errorf("list incidents: %w", err)
		}
		if statemachine.HasPendingIncident(id, incidents) {
			// отмена диспетчером закрывает открытый инцидент возвратом
			if !actor.Is(entities.RoleDispatcher) || target != entities.OrderCancelled {
				return ErrIncidentPending
			}
			if err := s.closeAsReturned(ctx, actor, incidents); err != nil {
				return err
			}
		}

		from = statemachine.EffectiveQueue(*order, incidents)
		if err := statemachine.Check(from, target, actor.Role, statemachine.GateNone); err != nil {
			return err
		}

		updated, err = s.repository.Update(ctx, statemachine.Patch(id, target))
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, statemachine.NewEvent(id, from, target, actor, updated.UpdatedAt))

	return &entities.OrderView{Order: *updated, EffectiveStatus: updated.Status}, nil
}

func (s *Service) closeAsReturned(ctx context.Context, actor entities.Actor, incidents []entities.Incident) error {
	status := entities.IncidentResolved
	decision := entities.DecisionReturn
	for _, incident := range incidents {
		if incident.Status != entities.IncidentPending {
			continue
		}
		_, err := s.incidents.Update(ctx, entities.IncidentModify{
			ID:         &incident.ID,
			Status:     &status,
			Decision:   &decision,
			ResolvedBy: &actor.ID,
		})
		if err != nil {
			return fmt.Errorf("resolve incident: %w", err)
		}
	}
	return nil
}

// AtRisk активные заказы, у которых скоро наступает время забора или доставки.
func (s *Service) AtRisk(ctx context.Context, now time.Time) ([]entities.Order, error) {
	orders, err := s.repository.List(ctx, entities.OrderFilter{Statuses: entities.ActiveStatuses})
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}

	result := make([]entities.Order, 0)
	for _, order := range orders {
		if IsAtRisk(order, now) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *Service) withEffectiveStatus(ctx context.Context, orders []entities.Order) ([]entities.OrderView, error) {
	if len(orders) == 0 {
		return []entities.OrderView{}, nil
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}

	incidents, err := s.incidents.List(ctx, entities.IncidentFilter{OrderIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	views := make([]entities.OrderView, len(orders))
	for i, order := range orders {
		views[i] = entities.OrderView{
			Order:           order,
			EffectiveStatus: statemachine.EffectiveQueue(order, incidents),
		}
	}
	return views, nil
}

func canView(actor entities.Actor, order *entities.Order) error {
	switch actor.Role {
	case entities.RoleDispatcher:
		return nil
	case entities.RoleSender:
		if order.SenderID == actor.ID {
			return nil
		}
	case entities.RoleCourier:
		if isAssignedTo(order, actor.ID) {
			return nil
		}
	}
	return fmt.Errorf("%w: order is not visible to %s", entities.ErrForbidden, actor.Role)
}

func isAssignedTo(order *entities.Order, courierID string) bool {
	return order.CourierID != nil && *order.CourierID == courierID
}
