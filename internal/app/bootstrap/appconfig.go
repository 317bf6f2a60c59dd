// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"strconv"
	"strings"
	"time"
)

// EnvProduction is the NODE_ENV value that selects production behavior.
const EnvProduction = "production"

// DefaultPort is used when PORT is unset or not numeric.
const DefaultPort = 3000

// AppConfig holds everything the app needs to start.
//
// It is computed once by LoadConfig and passed by value to each lifecycle
// step; nothing reads the process environment after that.
type AppConfig struct {
	// Env selects production vs development; anything other than
	// "production" is development.
	Env string `env:"NODE_ENV" envDefault:"development"`

	// Port is kept raw so a non-numeric value can fall back to DefaultPort
	// instead of failing startup.
	Port string `env:"PORT"`

	// MongoDB connection string; only used (and required) in production.
	MongoURI string `env:"MONGODB_URI"`

	// Session management configuration. SessionSecret is the master secret
	// for signing and encrypting session cookies.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionName   string        `env:"SESSION_NAME" envDefault:"conduit.sid"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"60s"`

	// StaticDir is the directory served ahead of the router.
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
}

// Production reports whether the app runs with production behavior.
func (c AppConfig) Production() bool {
	return c.Env == EnvProduction
}

// ListenPort returns the port to bind.
func (c AppConfig) ListenPort() int {
	return ResolvePort(c.Port)
}

// ResolvePort parses raw as a TCP port. Empty, non-numeric, or out-of-range
// values yield DefaultPort. "0" is honored and binds an ephemeral port.
func ResolvePort(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || p < 0 || p > 65535 {
		return DefaultPort
	}
	return p
}
