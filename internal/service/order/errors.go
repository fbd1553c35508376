package order

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID     = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrMissingFields      = fmt.Errorf("%w: missing required fields", entities.ErrValidation)
	ErrInvalidSchedule    = fmt.Errorf("%w: delivery must not be scheduled before pickup", entities.ErrValidation)
	ErrInvalidStatusGroup = fmt.Errorf("%w: unknown status group", entities.ErrValidation)

	ErrIncidentPending = fmt.Errorf("%w: order has a pending incident", entities.ErrWrongOrderState)

	ErrOrderNumberExhausted = errors.New("could not allocate unique order number")
)
