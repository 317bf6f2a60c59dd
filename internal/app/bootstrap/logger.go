// internal/app/bootstrap/logger.go
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development logs at debug level with
// the console encoder; production logs JSON at info level. Both write to
// standard output.
func NewLogger(cfg AppConfig) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Production() {
		zc = zap.NewProductionConfig()
	}
	zc.OutputPaths = []string{"stdout"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("env", envName(cfg))), nil
}

func envName(cfg AppConfig) string {
	if cfg.Production() {
		return EnvProduction
	}
	return "development"
}
