package orders_get

import (
	"net/http"
	"net/url"
	"strings"

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

	filter, ok := parseFilter(r.URL.Query())
	if !ok {
		response.BadRequest(w, h.log, "invalid status filter")
		return
	}

	orders, err := h.service.ListOrders(r.Context(), actor, filter)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrderViews(orders))
}

// parseFilter status можно передать несколько раз или через запятую.
func parseFilter(query url.Values) (entities.OrderFilter, bool) {
	var filter entities.OrderFilter

	for _, raw := range query["status"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			status := entities.OrderStatusType(part)
			if !status.IsValid() {
				return entities.OrderFilter{}, false
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	filter.Group = entities.StatusGroup(query.Get("group"))

	if senderID := query.Get("sender_id"); senderID != "" {
		filter.SenderID = &senderID
	}
	if courierID := query.Get("courier_id"); courierID != "" {
		filter.CourierID = &courierID
	}

	return filter, true
}
