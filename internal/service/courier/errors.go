package courier

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidCourierID = fmt.Errorf("%w: invalid courier id", entities.ErrValidation)
	ErrInvalidPresence  = fmt.Errorf("%w: invalid presence", entities.ErrValidation)
)
