package order_delete

import (
	"net/http"

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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, h.log)
		return
	}

	id := mux.Vars(r)["id"]

	err := h.service.DeleteOrder(r.Context(), actor, id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order", id),
		logger.NewField("actor", actor.ID),
	).Info("order deleted")

	w.WriteHeader(http.StatusNoContent)
}
