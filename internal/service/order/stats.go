package order

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

// Stats сводка для дашборда в зависимости от роли.
func (s *Service) Stats(ctx context.Context, actor entities.Actor, now time.Time) (*entities.Stats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		stats   *entities.Stats
		collect func(ctx context.Context) (*entities.Stats, error)
	)
	switch actor.Role {
	case entities.RoleDispatcher:
		collect = func(ctx context.Context) (*entities.Stats, error) { return s.dispatcherStats(ctx, startOfDay) }
	case entities.RoleSender:
		collect = func(ctx context.Context) (*entities.Stats, error) { return s.senderStats(ctx, actor.ID) }
	case entities.RoleCourier:
		collect = func(ctx context.Context) (*entities.Stats, error) { return s.courierStats(ctx, actor.ID, startOfDay) }
	default:
		return nil, entities.ErrForbidden
	}

	// счетчики из одного снимка, иначе сумма по статусам может разойтись с итогом
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats, err = collect(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) dispatcherStats(ctx context.Context, startOfDay time.Time) (*entities.Stats, error) {
	active, err := s.repository.Count(ctx, entities.OrderFilter{Statuses: entities.ActiveStatuses}, nil)
	if err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}

	couriers, err := s.couriers.CountEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("count couriers: %w", err)
	}

	deliveredToday, err := s.repository.Count(ctx, entities.OrderFilter{
		Statuses: []entities.OrderStatusType{entities.OrderDelivered},
	}, &startOfDay)
	if err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}

	return &entities.Stats{
		Role: entities.RoleDispatcher,
		Dispatcher: &entities.DispatcherStats{
			ActiveOrders:   active,
			ActiveCouriers: couriers,
			DeliveredToday: deliveredToday,
		},
	}, nil
}

func (s *Service) senderStats(ctx context.Context, senderID string) (*entities.Stats, error) {
	total, err := s.repository.Count(ctx, entities.OrderFilter{SenderID: &senderID}, nil)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	active, err := s.repository.Count(ctx, entities.OrderFilter{
		SenderID: &senderID,
		Statuses: entities.ActiveStatuses,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}

	completed, err := s.repository.Count(ctx, entities.OrderFilter{
		SenderID: &senderID,
		Statuses: []entities.OrderStatusType{entities.OrderDelivered},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}

	return &entities.Stats{
		Role: entities.RoleSender,
		Sender: &entities.SenderStats{
			Total:     total,
			Active:    active,
			Completed: completed,
		},
	}, nil
}

func (s *Service) courierStats(ctx context.Context, courierID string, startOfDay time.Time) (*entities.Stats, error) {
	assigned, err := s.repository.Count(ctx, entities.OrderFilter{
		CourierID: &courierID,
		Statuses:  []entities.OrderStatusType{entities.OrderAssigned, entities.OrderGoingToPickup},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("count assigned orders: %w", err)
	}

	// после доставки курьер снимается с заказа, поэтому считаем по подтверждениям
	completedToday, err := s.evidence.CountByCourierSince(ctx, courierID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}

	inTransit, err := s.repository.Count(ctx, entities.OrderFilter{
		CourierID: &courierID,
		Statuses:  []entities.OrderStatusType{entities.OrderInTransit},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("count orders in transit: %w", err)
	}

	return &entities.Stats{
		Role: entities.RoleCourier,
		Courier: &entities.CourierStats{
			Assigned:       assigned,
			CompletedToday: completedToday,
			InTransit:      inTransit,
		},
	}, nil
}
