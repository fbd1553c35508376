package timeout

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

const timeoutBody = `{"error":"Gateway Timeout","message":"request timed out"}`

// Middleware ограничивает время обработки запроса. Если хендлер ничего не
// записал до дедлайна, клиент получает 504.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &trackingWriter{ResponseWriter: w}
			next.ServeHTTP(tw, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !tw.written() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusGatewayTimeout)
				_, _ = w.Write([]byte(timeoutBody))
			}
		})
	}
}

type trackingWriter struct {
	http.ResponseWriter

	mu          sync.Mutex
	wroteHeader bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.mu.Lock()
	tw.wroteHeader = true
	tw.mu.Unlock()
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	tw.wroteHeader = true
	tw.mu.Unlock()
	return tw.ResponseWriter.Write(b)
}

func (tw *trackingWriter) written() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.wroteHeader
}
