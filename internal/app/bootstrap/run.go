// internal/app/bootstrap/run.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Run executes the app lifecycle: load and validate config, connect the
// database, build the handler, and serve until ctx is cancelled. Database
// teardown runs on every exit path after a successful connect.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := ValidateConfig(cfg, logger); err != nil {
		return err
	}

	deps, err := ConnectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = Shutdown(shutdownCtx, deps, logger)
	}()

	handler, err := BuildHandler(cfg, deps, logger)
	if err != nil {
		return err
	}

	ln, err := Listen(cfg)
	if err != nil {
		logger.Error("listen failed", zap.Error(err))
		return err
	}

	if err := Serve(ctx, ln, handler, logger); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("stopped")
	return nil
}
