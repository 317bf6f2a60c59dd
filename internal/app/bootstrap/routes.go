// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/conduit/internal/app/features/errors"
	"github.com/dalemusser/conduit/internal/app/system/methodoverride"
	"github.com/dalemusser/conduit/internal/app/system/requestlog"
	"github.com/dalemusser/conduit/internal/app/system/session"
	"github.com/dalemusser/conduit/internal/app/system/static"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler.
//
// Middleware order matters; each stage sees a request only after the ones
// above it:
//  1. CORS (any origin)
//  2. request ID and request logging
//  3. panic recovery into the error renderer
//  4. HTTP verb override
//  5. static files from cfg.StaticDir (matched requests stop here)
//  6. cookie sessions
//
// No application routes are mounted. Anything reaching the router is
// answered by the catch-all with a 404 envelope from the single renderer
// chosen for this environment.
func BuildHandler(cfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secret, err := sessionSecret(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	sessionMgr, err := session.NewManager(session.Options{
		Secret: secret,
		Name:   cfg.SessionName,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.Production(),
	}, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	renderer := errorsfeature.NewRenderer(cfg.Production(), logger)
	errorsHandler := errorsfeature.NewHandler(renderer)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestlog.HeaderRequestID},
	}))
	r.Use(requestlog.RequestID)
	r.Use(requestlog.Logger(logger))
	r.Use(errorsfeature.Recoverer(renderer, logger))
	r.Use(methodoverride.Middleware)
	r.Use(static.Middleware(cfg.StaticDir))
	r.Use(sessionMgr.Middleware)

	// chi only runs the middleware stack for mux-matched routes, so the
	// catch-all is a real route rather than just the NotFound handler.
	r.Handle("/*", http.HandlerFunc(errorsHandler.NotFound))
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.NotFound)

	logger.Info("handler built",
		zap.Bool("production", cfg.Production()),
		zap.String("static_dir", cfg.StaticDir),
		zap.Bool("database", deps.MongoDatabase != nil))

	return r, nil
}
