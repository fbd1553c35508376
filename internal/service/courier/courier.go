package courier

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
)

type Courier struct {
	repository Repository
}

func New(repository Repository) *Courier {
	return &Courier{
		repository: repository,
	}
}

// GetCourier диспетчер видит любого курьера, курьер только себя.
func (s *Courier) GetCourier(ctx context.Context, actor entities.Actor, id string) (*entities.Courier, error) {
	if !isValidCourierID(id) {
		return nil, ErrInvalidCourierID
	}
	if !actor.Is(entities.RoleDispatcher) && actor.ID != id {
		return nil, entities.ErrForbidden
	}

	courier, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return courier, nil
}

func (s *Courier) ListCouriers(ctx context.Context, actor entities.Actor, eligibleOnly bool) ([]entities.Courier, error) {
	if !actor.Is(entities.RoleDispatcher) {
		return nil, fmt.Errorf("%w: only dispatcher may list couriers", entities.ErrForbidden)
	}

	couriers, err := s.repository.List(ctx, entities.CourierFilter{EligibleOnly: eligibleOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to get couriers: %w", err)
	}

	return couriers, nil
}

// UpdatePresence курьер отмечается онлайн/офлайн. На назначение не влияет.
func (s *Courier) UpdatePresence(ctx context.Context, actor entities.Actor, presence entities.CourierPresenceType) (*entities.Courier, error) {
	if !actor.Is(entities.RoleCourier) {
		return nil, fmt.Errorf("%w: only couriers have presence", entities.ErrForbidden)
	}
	if !isValidPresence(presence) {
		return nil, ErrInvalidPresence
	}

	courier, err := s.repository.UpdatePresence(ctx, actor.ID, presence)
	if err != nil {
		return nil, fmt.Errorf("failed to update presence: %w", err)
	}
	return courier, nil
}
