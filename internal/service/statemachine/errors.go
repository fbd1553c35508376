package statemachine

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrUnknownStatus = fmt.Errorf("%w: unknown order status", entities.ErrValidation)
	ErrGateRequired  = fmt.Errorf("%w: transition requires a dedicated operation", entities.ErrInvalidTransition)
)
