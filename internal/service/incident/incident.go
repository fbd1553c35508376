package incident

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/statemachine"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	repository  Repository
	orders      OrderRepository
	reassigner  Reassigner
	attachments AttachmentStorage
	publisher   EventPublisher
	txManager   TxManager
	log         serviceLogger
	now         func() time.Time
}

func New(
	repository Repository,
	orders OrderRepository,
	reassigner Reassigner,
	attachments AttachmentStorage,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		repository:  repository,
		orders:      orders,
		reassigner:  reassigner,
		attachments: attachments,
		publisher:   publisher,
		txManager:   txManager,
		log:         log.With(logger.NewField("component", "incident-service")),
		now:         time.Now,
	}
}

// attachmentResult итог загрузки фото. Ошибка загрузки не мешает создать инцидент.
type attachmentResult struct {
	URL *string
	Err error
}

// Report курьер сообщает о проблеме. Статус заказа в хранилище не меняется,
// в очередях заказ уходит в incident_reported, пока инцидент не решен.
func (s *Service) Report(ctx context.Context, actor entities.Actor, report entities.IncidentReport) (*entities.Incident, error) {
	if !actor.Is(entities.RoleCourier) {
		return nil, fmt.Errorf("%w: only courier may report incidents", entities.ErrForbidden)
	}
	if err := validateReport(report); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, report.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.CourierID == nil || *order.CourierID != actor.ID {
		return nil, fmt.Errorf("%w: order is not assigned to courier", entities.ErrForbidden)
	}

	existing, err := s.repository.List(ctx, entities.IncidentFilter{OrderIDs: []string{order.ID}})
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	if statemachine.HasPendingIncident(order.ID, existing) {
		return nil, ErrIncidentAlreadyPending
	}

	from := statemachine.EffectiveQueue(*order, existing)
	if !isReportable(from) {
		return nil, ErrOrderNotReportable
	}
	if err := statemachine.Check(from, entities.OrderIncidentReported, actor.Role, statemachine.GateIncident); err != nil {
		return nil, err
	}

	photo := s.uploadPhoto(ctx, report)
	if photo.Err != nil {
		s.log.Warn("incident photo upload failed, reporting without photo",
			logger.NewField("order", order.ID),
			logger.NewField("error", photo.Err),
		)
	}

	id := uuid.NewString()
	pending := entities.IncidentPending
	description := strings.TrimSpace(report.Description)
	incident, err := s.repository.Create(ctx, entities.IncidentModify{
		ID:                  &id,
		OrderID:             &order.ID,
		CourierID:           &actor.ID,
		Type:                &report.Type,
		Description:         &description,
		PhotoURL:            photo.URL,
		Status:              &pending,
		OrderStatusAtReport: &order.Status,
	})
	if errors.Is(err, entities.ErrConflict) {
		return nil, ErrIncidentAlreadyPending
	}
	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	s.log.Info("incident reported",
		logger.NewField("order", order.ID),
		logger.NewField("incident", incident.ID),
		logger.NewField("type", report.Type.String()),
	)
	s.publisher.Publish(ctx, statemachine.NewEvent(order.ID, from, entities.OrderIncidentReported, actor, incident.CreatedAt))

	return incident, nil
}

func (s *Service) uploadPhoto(ctx context.Context, report entities.IncidentReport) attachmentResult {
	if len(report.Photo) == 0 {
		return attachmentResult{}
	}

	key := fmt.Sprintf("incidents/%s/%d_photo", report.OrderID, s.now().Unix())
	url, err := s.attachments.Upload(ctx, key, http.DetectContentType(report.Photo), report.Photo)
	if err != nil {
		return attachmentResult{Err: err}
	}
	return attachmentResult{URL: &url}
}

// Resolve диспетчер применяет решение. Заказ и инцидент меняются в одной транзакции.
func (s *Service) Resolve(ctx context.Context, actor entities.Actor, resolution entities.IncidentResolution) (*entities.Incident, error) {
	if !actor.Is(entities.RoleDispatcher) {
		return nil, fmt.Errorf("%w: only dispatcher may resolve incidents", entities.ErrForbidden)
	}
	if err := validateResolution(resolution); err != nil {
		return nil, err
	}

	var (
		resolved *entities.Incident
		updated  *entities.Order
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		incident, err := s.repository.GetByID(ctx, resolution.IncidentID)
		if err != nil {
			return fmt.Errorf("get incident: %w", err)
		}
		if incident.Status == entities.IncidentResolved {
			return entities.ErrAlreadyResolved
		}

		order, err := s.orders.GetByID(ctx, incident.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		updated, err = s.apply(ctx, incident, order, resolution)
		if err != nil {
			return err
		}

		status := entities.IncidentResolved
		modify := entities.IncidentModify{
			ID:           &incident.ID,
			Status:       &status,
			Decision:     &resolution.Decision,
			ResolvedBy:   &actor.ID,
			NewCourierID: resolution.NewCourierID,
		}
		if notes := strings.TrimSpace(resolution.Notes); notes != "" {
			modify.AdminNotes = &notes
		}

		resolved, err = s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("resolve incident: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("incident resolved",
		logger.NewField("incident", resolved.ID),
		logger.NewField("decision", resolution.Decision.String()),
	)
	if updated != nil {
		s.publisher.Publish(ctx, statemachine.NewEvent(
			updated.ID, entities.OrderIncidentReported, updated.Status, actor, updated.UpdatedAt,
		))
	}

	return resolved, nil
}

// apply побочный эффект решения. nil заказ означает, что заказ не менялся.
func (s *Service) apply(
	ctx context.Context,
	incident *entities.Incident,
	order *entities.Order,
	resolution entities.IncidentResolution,
) (*entities.Order, error) {
	var target entities.OrderStatusType

	switch resolution.Decision {
	case entities.DecisionWaitingClient:
		return nil, nil
	case entities.DecisionReassign:
		updated, err := s.reassigner.Reassign(ctx, order, *resolution.NewCourierID)
		if err != nil {
			return nil, fmt.Errorf("reassign order: %w", err)
		}
		return updated, nil
	case entities.DecisionRetry:
		target = incident.OrderStatusAtReport
	case entities.DecisionReturn:
		target = entities.OrderCancelled
	default:
		return nil, ErrUnknownDecision
	}

	err := statemachine.Check(entities.OrderIncidentReported, target, entities.RoleDispatcher, statemachine.GateNone)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.Update(ctx, statemachine.Patch(order.ID, target))
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return updated, nil
}

// ListIncidents новые сверху. Курьер видит только свои инциденты.
func (s *Service) ListIncidents(ctx context.Context, actor entities.Actor, filter entities.IncidentFilter) ([]entities.Incident, error) {
	switch actor.Role {
	case entities.RoleDispatcher:
	case entities.RoleCourier:
		filter.CourierID = &actor.ID
	default:
		return nil, fmt.Errorf("%w: incidents are not visible to %s", entities.ErrForbidden, actor.Role)
	}

	incidents, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return incidents, nil
}
