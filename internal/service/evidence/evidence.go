package evidence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/statemachine"
	"dispatch/pkg/logger"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
)

type Service struct {
	repository  Repository
	orders      OrderRepository
	incidents   IncidentRepository
	attachments AttachmentStorage
	publisher   EventPublisher
	txManager   TxManager
	log         serviceLogger
	now         func() time.Time
}

func New(
	repository Repository,
	orders OrderRepository,
	incidents IncidentRepository,
	attachments AttachmentStorage,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		repository:  repository,
		orders:      orders,
		incidents:   incidents,
		attachments: attachments,
		publisher:   publisher,
		txManager:   txManager,
		log:         log.With(logger.NewField("component", "evidence-service")),
		now:         time.Now,
	}
}

// FinalizeDelivery единственный путь в delivered: подпись загружается в хранилище,
// затем в одной транзакции сохраняется подтверждение и меняется статус.
func (s *Service) FinalizeDelivery(ctx context.Context, actor entities.Actor, proof entities.DeliveryProof) (*entities.DeliveryEvidence, error) {
	if !actor.Is(entities.RoleCourier) {
		return nil, fmt.Errorf("%w: only courier may confirm delivery", entities.ErrForbidden)
	}
	if err := validateProof(proof); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, proof.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if _, err := s.checkDeliverable(ctx, actor, order); err != nil {
		return nil, err
	}

	// декодируем только после проверки владельца
	format, err := decodeSignature(proof.Signature)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("delivery_evidence/%s/%d_signature.%s", proof.OrderID, s.now().Unix(), signatureExtensions[format])

	signatureURL, err := s.attachments.Upload(ctx, key, "image/"+format, proof.Signature)
	if err != nil {
		return nil, fmt.Errorf("upload signature: %w", err)
	}

	var (
		evidence *entities.DeliveryEvidence
		updated  *entities.Order
		from     entities.OrderStatusType
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, proof.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		from, err = s.checkDeliverable(ctx, actor, order)
		if err != nil {
			return err
		}

		evidence, err = s.repository.GetByOrderID(ctx, proof.OrderID)
		switch {
		case errors.Is(err, entities.ErrEvidenceNotFound):
			evidence, err = s.repository.Create(ctx, entities.DeliveryEvidenceModify{
				ID:                pointer.To(uuid.NewString()),
				OrderID:           &proof.OrderID,
				CourierID:         &actor.ID,
				RecipientName:     &proof.RecipientName,
				RecipientIDNumber: &proof.RecipientIDNumber,
				SignatureURL:      &signatureURL,
				Notes:             proof.Notes,
			})
			if err != nil {
				return fmt.Errorf("create delivery evidence: %w", err)
			}
		case err != nil:
			return fmt.Errorf("get delivery evidence: %w", err)
		default:
			s.log.Warn("delivery evidence already exists, reusing",
				logger.NewField("order", proof.OrderID),
				logger.NewField("evidence", evidence.ID),
			)
		}

		updated, err = s.orders.Update(ctx, statemachine.Patch(proof.OrderID, entities.OrderDelivered))
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("delivery confirmed",
		logger.NewField("order", proof.OrderID),
		logger.NewField("courier", actor.ID),
	)
	s.publisher.Publish(ctx, statemachine.NewEvent(proof.OrderID, from, entities.OrderDelivered, actor, updated.UpdatedAt))

	return evidence, nil
}

// checkDeliverable возвращает статус заказа для очередей, из которого идет переход.
func (s *Service) checkDeliverable(ctx context.Context, actor entities.Actor, order *entities.Order) (entities.OrderStatusType, error) {
	if order.CourierID == nil || *order.CourierID != actor.ID {
		return "", fmt.Errorf("%w: order is not assigned to courier", entities.ErrForbidden)
	}

	incidents, err := s.incidents.List(ctx, entities.IncidentFilter{OrderIDs: []string{order.ID}})
	if err != nil {
		return "", fmt.Errorf("list incidents: %w", err)
	}
	if statemachine.HasPendingIncident(order.ID, incidents) {
		return "", ErrIncidentPending
	}

	from := statemachine.EffectiveQueue(*order, incidents)
	if err := statemachine.Check(from, entities.OrderDelivered, actor.Role, statemachine.GateEvidence); err != nil {
		return "", err
	}
	return from, nil
}

// GetEvidence подтверждение доставки заказа. Видят диспетчер, отправитель и доставивший курьер.
func (s *Service) GetEvidence(ctx context.Context, actor entities.Actor, orderID string) (*entities.DeliveryEvidence, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	evidence, err := s.repository.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get delivery evidence: %w", err)
	}

	switch actor.Role {
	case entities.RoleDispatcher:
		return evidence, nil
	case entities.RoleCourier:
		if evidence.CourierID == actor.ID {
			return evidence, nil
		}
	case entities.RoleSender:
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}
		if order.SenderID == actor.ID {
			return evidence, nil
		}
	}
	return nil, fmt.Errorf("%w: delivery evidence is not visible to %s", entities.ErrForbidden, actor.Role)
}

func (s *Service) ListByCourier(ctx context.Context, actor entities.Actor, courierID string) ([]entities.DeliveryEvidence, error) {
	if !isValidID(courierID) {
		return nil, ErrInvalidCourierID
	}
	if !actor.Is(entities.RoleDispatcher) && actor.ID != courierID {
		return nil, entities.ErrForbidden
	}

	evidence, err := s.repository.ListByCourier(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("list delivery evidence: %w", err)
	}
	return evidence, nil
}
