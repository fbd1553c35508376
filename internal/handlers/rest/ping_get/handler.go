package ping_get

import (
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/pkg/logger"
)

type Handler struct {
	log handlerLogger
	now Clock
}

func New(log handlerLogger, now Clock) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping_get")),
		now: now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	serverTime := h.now().UTC()
	response.JSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message:    &message,
		ServerTime: &serverTime,
	})
}
