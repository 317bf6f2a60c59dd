// internal/app/features/errors/recover.go
package errors

import (
	"net/http"

	"github.com/dalemusser/conduit/internal/app/system/httperr"
	"github.com/dalemusser/conduit/internal/app/system/requestlog"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recoverer turns a panic in any later handler into a 500 error and
// forwards it to rend. http.ErrAbortHandler is re-raised so net/http can
// abort the connection as intended.
//
// A panic after the response status was already written cannot be
// rendered; it is logged and the partial response is left as is.
func Recoverer(rend Renderer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(middleware.WrapResponseWriter)
			if !ok {
				ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				err := httperr.FromPanic(v)
				if status := ww.Status(); status != 0 {
					logger.Error("panic after response started",
						zap.Int("status", status),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.String("request_id", requestlog.IDFrom(r.Context())),
						zap.Error(err),
						zap.String("stack", err.Stack),
					)
					return
				}
				rend.Render(ww, r, err)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
