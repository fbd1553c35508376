package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"dispatch/pkg/logger"
)

const pingTimeout = time.Second

type Handler struct {
	isShuttingDown *atomic.Bool
	dependencies   map[string]Pinger
	log            handlerLogger
}

func New(log handlerLogger, isShuttingDown *atomic.Bool, dependencies map[string]Pinger) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		dependencies:   dependencies,
		log:            log.With(logger.NewField("component", "healthcheck")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	for name, dependency := range h.dependencies {
		if err := dependency.Ping(ctx); err != nil {
			h.log.With(
				logger.NewField("dependency", name),
				logger.NewField("error", err),
			).Warn("healthcheck dependency unavailable")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// PingFunc адаптер для клиентов, у которых Ping не возвращает error напрямую.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
