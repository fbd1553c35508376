package evidence

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID    = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrInvalidCourierID  = fmt.Errorf("%w: invalid courier id", entities.ErrValidation)
	ErrMissingRecipient  = fmt.Errorf("%w: recipient name and id number are required", entities.ErrValidation)
	ErrBlankSignature    = fmt.Errorf("%w: signature is empty", entities.ErrValidation)
	ErrSignatureTooLarge = fmt.Errorf("%w: signature image is too large", entities.ErrValidation)
	ErrIncidentPending   = fmt.Errorf("%w: order has a pending incident", entities.ErrWrongOrderState)
)
