package order_transfer_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/pkg/logger"

	"github.com/gorilla/mux"
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

	var req dto.CourierRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	order, err := h.service.Transfer(r.Context(), actor, mux.Vars(r)["id"], req.CourierID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	// смена курьера на ходу, статус не меняется и событие не публикуется
	h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("courier", req.CourierID),
		logger.NewField("actor", actor.ID),
	).Info("order transferred")

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(order))
}
