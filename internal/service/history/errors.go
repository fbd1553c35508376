package history

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrInvalidEvent   = fmt.Errorf("%w: invalid order event", entities.ErrValidation)
)
