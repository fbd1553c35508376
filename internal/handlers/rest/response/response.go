package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/pkg/logger"
)

func JSON(w http.ResponseWriter, log handlerLogger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// Error переводит категорию доменной ошибки в HTTP статус.
// Текст 5xx наружу не отдаем.
func Error(w http.ResponseWriter, log handlerLogger, err error) {
	status := StatusFor(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
			logger.NewField("status", status),
		).Error("request failed")
		message = http.StatusText(status)
	}

	JSON(w, log, status, dto.Error{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// BadRequest для тел и параметров, которые не удалось разобрать.
func BadRequest(w http.ResponseWriter, log handlerLogger, message string) {
	JSON(w, log, http.StatusBadRequest, dto.Error{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
	})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrMissingDecision),
		errors.Is(err, entities.ErrMissingCourier):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrOrderNotFound),
		errors.Is(err, entities.ErrCourierNotFound),
		errors.Is(err, entities.ErrIncidentNotFound),
		errors.Is(err, entities.ErrEvidenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrWrongOrderState),
		errors.Is(err, entities.ErrIneligibleCourier),
		errors.Is(err, entities.ErrAlreadyAssigned),
		errors.Is(err, entities.ErrNoCurrentCourier),
		errors.Is(err, entities.ErrSameCourier),
		errors.Is(err, entities.ErrAlreadyResolved),
		errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Unauthorized запрос дошел до хендлера без актора в контексте.
func Unauthorized(w http.ResponseWriter, log handlerLogger) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSON(w, log, http.StatusUnauthorized, dto.Error{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: "missing actor",
	})
}
