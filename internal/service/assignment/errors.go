package assignment

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID   = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrInvalidCourierID = fmt.Errorf("%w: invalid courier id", entities.ErrValidation)
)
