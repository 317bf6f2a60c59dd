// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadConfig reads AppConfig from the environment.
//
// A .env file in the working directory is loaded first when present.
// Variables already set in the real environment take precedence over the
// file, so deployments never have their settings shadowed by a stray .env.
func LoadConfig() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Production must name its database and its session secret; development
// falls back to local defaults for both.
func ValidateConfig(cfg AppConfig, logger *zap.Logger) error {
	if cfg.SessionMaxAge < time.Second {
		return fmt.Errorf("SESSION_MAX_AGE must be at least 1s, got %s", cfg.SessionMaxAge)
	}

	if !cfg.Production() {
		return nil
	}

	if cfg.MongoURI == "" {
		return errors.New("MONGODB_URI is required in production")
	}
	if err := wafflemongo.ValidateURI(cfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required in production")
	}
	return nil
}

// sessionSecret returns the configured session secret. Development without
// one gets a random per-process secret, so sessions do not survive a
// restart.
func sessionSecret(cfg AppConfig, logger *zap.Logger) ([]byte, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), nil
	}
	if cfg.Production() {
		return nil, errors.New("SESSION_SECRET is required in production")
	}

	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return nil, errors.New("generate development session secret")
	}
	logger.Warn("SESSION_SECRET not set; using a random development secret")
	return key, nil
}
