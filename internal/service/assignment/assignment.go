package assignment

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/service/statemachine"
	"dispatch/pkg/logger"
)

type Service struct {
	orders    OrderRepository
	couriers  CourierRepository
	incidents IncidentRepository
	publisher EventPublisher
	txManager TxManager
	log       serviceLogger
}

func New(
	orders OrderRepository,
	couriers CourierRepository,
	incidents IncidentRepository,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		orders:    orders,
		couriers:  couriers,
		incidents: incidents,
		publisher: publisher,
		txManager: txManager,
		log:       log.With(logger.NewField("component", "assignment-service")),
	}
}

// Assign назначает курьера на заказ в pending. Курьер и статус пишутся одним обновлением.
func (s *Service) Assign(ctx context.Context, actor entities.Actor, orderID, courierID string) (*entities.Order, error) {
	if err := checkArgs(actor, orderID, courierID); err != nil {
		return nil, err
	}

	var (
		updated *entities.Order
		from    entities.OrderStatusType
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if order.CourierID != nil {
			return entities.ErrAlreadyAssigned
		}

		if err := s.checkEligible(ctx, courierID); err != nil {
			return err
		}

		incidents, err := s.incidents.List(ctx, entities.IncidentFilter{OrderIDs: []string{orderID}})
		if err != nil {
			return fmt.Errorf("list incidents: %w", err)
		}

		from = statemachine.EffectiveQueue(*order, incidents)
		if err := statemachine.Check(from, entities.OrderAssigned, actor.Role, statemachine.GateAssignment); err != nil {
			return err
		}

		modify := statemachine.Patch(orderID, entities.OrderAssigned)
		modify.CourierID = &courierID

		updated, err = s.orders.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("assign courier: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("courier assigned",
		logger.NewField("order", orderID),
		logger.NewField("courier", courierID),
	)
	s.publisher.Publish(ctx, statemachine.NewEvent(orderID, from, entities.OrderAssigned, actor, updated.UpdatedAt))

	return updated, nil
}

// Transfer меняет курьера у уже назначенного заказа, статус не трогаем.
func (s *Service) Transfer(ctx context.Context, actor entities.Actor, orderID, courierID string) (*entities.Order, error) {
	if err := checkArgs(actor, orderID, courierID); err != nil {
		return nil, err
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if err := s.checkTransfer(ctx, order, courierID); err != nil {
			return err
		}

		updated, err = s.orders.Update(ctx, entities.OrderModify{
			ID:        &orderID,
			CourierID: &courierID,
		})
		if err != nil {
			return fmt.Errorf("transfer order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order transferred",
		logger.NewField("order", orderID),
		logger.NewField("courier", courierID),
	)

	return updated, nil
}

// Reassign передает заказ с инцидентом новому курьеру и возвращает его в assigned.
// Вызывается внутри транзакции решения инцидента, событие публикует вызывающий.
func (s *Service) Reassign(ctx context.Context, order *entities.Order, courierID string) (*entities.Order, error) {
	if !isValidID(courierID) {
		return nil, ErrInvalidCourierID
	}

	if err := s.checkTransfer(ctx, order, courierID); err != nil {
		return nil, err
	}

	err := statemachine.Check(entities.OrderIncidentReported, entities.OrderAssigned, entities.RoleDispatcher, statemachine.GateAssignment)
	if err != nil {
		return nil, err
	}

	modify := statemachine.Patch(order.ID, entities.OrderAssigned)
	modify.CourierID = &courierID

	updated, err := s.orders.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("reassign order: %w", err)
	}
	return updated, nil
}

// Candidates активные курьеры, кроме текущего. Присутствие только для информации.
func (s *Service) Candidates(ctx context.Context, actor entities.Actor, orderID string) ([]entities.Courier, error) {
	if !actor.Is(entities.RoleDispatcher) {
		return nil, fmt.Errorf("%w: only dispatcher may assign couriers", entities.ErrForbidden)
	}
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	couriers, err := s.couriers.List(ctx, entities.CourierFilter{
		EligibleOnly: true,
		ExcludeID:    order.CourierID,
	})
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	return couriers, nil
}

func (s *Service) checkTransfer(ctx context.Context, order *entities.Order, courierID string) error {
	if order.CourierID == nil {
		return entities.ErrNoCurrentCourier
	}
	if *order.CourierID == courierID {
		return entities.ErrSameCourier
	}
	return s.checkEligible(ctx, courierID)
}

func (s *Service) checkEligible(ctx context.Context, courierID string) error {
	courier, err := s.couriers.GetByID(ctx, courierID)
	if err != nil {
		return fmt.Errorf("get courier: %w", err)
	}
	if !courier.IsEligible() {
		return fmt.Errorf("%w: %s", entities.ErrIneligibleCourier, courierID)
	}
	return nil
}

func checkArgs(actor entities.Actor, orderID, courierID string) error {
	if !actor.Is(entities.RoleDispatcher) {
		return fmt.Errorf("%w: only dispatcher may assign couriers", entities.ErrForbidden)
	}
	if !isValidID(orderID) {
		return ErrInvalidOrderID
	}
	if !isValidID(courierID) {
		return ErrInvalidCourierID
	}
	return nil
}
