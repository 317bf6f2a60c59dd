// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/conduit/internal/app/system/htmlsanitize"
	"github.com/dalemusser/conduit/internal/app/system/httperr"
	"github.com/dalemusser/conduit/internal/app/system/requestlog"
	"go.uber.org/zap"
)

// DevRenderer exposes full error detail. The stack is logged server-side
// and the complete error object is returned to the client.
type DevRenderer struct {
	Log *zap.Logger
}

// NewDevRenderer constructs a DevRenderer.
func NewDevRenderer(logger *zap.Logger) *DevRenderer {
	return &DevRenderer{Log: logger}
}

// Render implements Renderer.
func (d *DevRenderer) Render(w http.ResponseWriter, r *http.Request, err error) {
	status := httperr.StatusOf(err)

	d.Log.Error("request error",
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestlog.IDFrom(r.Context())),
		zap.Error(err),
		zap.String("stack", httperr.StackOf(err)),
	)

	writeJSON(w, status, envelope{Errors: errorBody{
		Message: httperr.MessageOf(err),
		Error:   httperr.Detail(err),
	}})
}

// ProdRenderer returns only the message. Internal detail never reaches
// the client; the "error" member is always {}.
type ProdRenderer struct {
	Log *zap.Logger
}

// NewProdRenderer constructs a ProdRenderer.
func NewProdRenderer(logger *zap.Logger) *ProdRenderer {
	return &ProdRenderer{Log: logger}
}

// Render implements Renderer.
func (p *ProdRenderer) Render(w http.ResponseWriter, r *http.Request, err error) {
	status := httperr.StatusOf(err)

	if status >= http.StatusInternalServerError {
		p.Log.Error("request error",
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestlog.IDFrom(r.Context())),
			zap.Error(err),
		)
	}

	writeJSON(w, status, envelope{Errors: errorBody{
		Message: htmlsanitize.StripTags(httperr.MessageOf(err)),
		Error:   struct{}{},
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
