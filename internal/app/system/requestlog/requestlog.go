// Package requestlog tags each request with an ID and writes one
// structured log line per request.
package requestlog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID is read from inbound requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// maxInboundIDLen caps client-supplied IDs; longer ones are replaced.
const maxInboundIDLen = 128

type ctxKey string

const requestIDKey ctxKey = "requestID"

// IDFrom returns the request ID stored by RequestID, or "".
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID reuses a sane inbound X-Request-ID or mints a UUID, stores it
// in the request context, and sets it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxInboundIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger writes one line per completed request. Requests short-circuited by
// later middleware (static files included) are still logged.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// Capture before later middleware rewrites the method.
			method, path := r.Method, r.URL.RequestURI()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				logger.Info("request",
					zap.String("method", method),
					zap.String("path", path),
					zap.Int("status", status),
					zap.Duration("duration", time.Since(start)),
					zap.Int("bytes", ww.BytesWritten()),
					zap.String("request_id", IDFrom(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
