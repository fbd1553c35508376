package incidents_get

import (
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/auth"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, h.log)
		return
	}

	query := r.URL.Query()

	var filter entities.IncidentFilter
	if orderID := query.Get("order_id"); orderID != "" {
		filter.OrderIDs = []string{orderID}
	}
	if courierID := query.Get("courier_id"); courierID != "" {
		filter.CourierID = &courierID
	}
	if raw := query.Get("status"); raw != "" {
		status := entities.IncidentStatusType(raw)
		if status != entities.IncidentPending && status != entities.IncidentResolved {
			response.BadRequest(w, h.log, "invalid incident status")
			return
		}
		filter.Status = &status
	}

	incidents, err := h.service.ListIncidents(r.Context(), actor, filter)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromIncidents(incidents))
}
