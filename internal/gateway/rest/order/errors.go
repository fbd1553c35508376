package order

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUnauthorized = errors.New("api rejected token")

// StatusError ответ API с неуспешным кодом.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}
