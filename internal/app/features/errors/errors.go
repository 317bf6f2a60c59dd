// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/conduit/internal/app/system/httperr"
	"go.uber.org/zap"
)

// Renderer writes the JSON error envelope for err.
//
// Exactly one Renderer is active per process; NewRenderer picks it once
// from the environment flag.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, err error)
}

// envelope is the wire shape of every error response:
//
//	{ "errors": { "message": "...", "error": { ... } } }
type envelope struct {
	Errors errorBody `json:"errors"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// NewRenderer returns the production renderer when production is true and
// the development renderer otherwise.
func NewRenderer(production bool, logger *zap.Logger) Renderer {
	if production {
		return NewProdRenderer(logger)
	}
	return NewDevRenderer(logger)
}

// Handler serves the catch-all routes.
type Handler struct {
	Renderer Renderer
}

// NewHandler constructs an errors Handler that forwards to rend.
func NewHandler(rend Renderer) *Handler {
	return &Handler{Renderer: rend}
}

// NotFound forwards a "Not Found" (404) error to the renderer.
// Mounted as the router's NotFound and MethodNotAllowed handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, httperr.NotFound())
}
