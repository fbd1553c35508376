package history

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

type Service struct {
	repository Repository
	orders     OrderRepository
}

func New(repository Repository, orders OrderRepository) *Service {
	return &Service{
		repository: repository,
		orders:     orders,
	}
}

// Record сохраняет событие. Повторная доставка того же события ничего не меняет.
func (s *Service) Record(ctx context.Context, event entities.OrderEvent) error {
	if strings.TrimSpace(event.ID) == "" ||
		strings.TrimSpace(event.OrderID) == "" ||
		!event.ToStatus.IsValid() {
		return ErrInvalidEvent
	}

	if err := s.repository.Save(ctx, event); err != nil {
		return fmt.Errorf("save order event: %w", err)
	}
	return nil
}

// List история статусов заказа, старые сверху.
func (s *Service) List(ctx context.Context, actor entities.Actor, orderID string) ([]entities.OrderEvent, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}

	if !actor.Is(entities.RoleDispatcher) {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}

		visible := (actor.Is(entities.RoleSender) && order.SenderID == actor.ID) ||
			(actor.Is(entities.RoleCourier) && order.CourierID != nil && *order.CourierID == actor.ID)
		if !visible {
			return nil, entities.ErrForbidden
		}
	}

	events, err := s.repository.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	return events, nil
}
