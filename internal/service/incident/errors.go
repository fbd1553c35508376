package incident

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidIncidentID   = fmt.Errorf("%w: invalid incident id", entities.ErrValidation)
	ErrInvalidOrderID      = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrUnknownIncidentType = fmt.Errorf("%w: unknown incident type", entities.ErrValidation)
	ErrDescriptionTooShort = fmt.Errorf("%w: description must be at least %d characters", entities.ErrValidation, minDescriptionLength)
	ErrUnknownDecision     = fmt.Errorf("%w: unknown resolution decision", entities.ErrValidation)

	ErrOrderNotReportable     = fmt.Errorf("%w: incidents can be reported only while going to pickup or in transit", entities.ErrWrongOrderState)
	ErrIncidentAlreadyPending = fmt.Errorf("%w: order already has a pending incident", entities.ErrWrongOrderState)
)
