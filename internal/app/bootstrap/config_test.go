package bootstrap

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NODE_ENV", "PORT", "MONGODB_URI", "SESSION_SECRET", "SESSION_NAME", "SESSION_MAX_AGE", "STATIC_DIR"} {
		unsetenv(t, k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearAppEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Production() {
		t.Error("expected development by default")
	}
	if cfg.ListenPort() != DefaultPort {
		t.Errorf("port: got %d, want %d", cfg.ListenPort(), DefaultPort)
	}
	if cfg.SessionMaxAge != 60*time.Second {
		t.Errorf("session max age: got %s, want 60s", cfg.SessionMaxAge)
	}
	if cfg.SessionName != "conduit.sid" {
		t.Errorf("session name: got %q", cfg.SessionName)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("static dir: got %q", cfg.StaticDir)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("MONGODB_URI", "mongodb://db.example.com:27017/conduit")
	t.Setenv("SESSION_SECRET", "from-the-environment")
	t.Setenv("SESSION_MAX_AGE", "2m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.Production() {
		t.Error("expected production")
	}
	if cfg.ListenPort() != 8081 {
		t.Errorf("port: got %d, want 8081", cfg.ListenPort())
	}
	if cfg.MongoURI != "mongodb://db.example.com:27017/conduit" {
		t.Errorf("mongo uri: got %q", cfg.MongoURI)
	}
	if cfg.SessionSecret != "from-the-environment" {
		t.Errorf("session secret: got %q", cfg.SessionSecret)
	}
	if cfg.SessionMaxAge != 2*time.Minute {
		t.Errorf("session max age: got %s", cfg.SessionMaxAge)
	}
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("SESSION_MAX_AGE", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}

func TestProduction_OnlyExactValue(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"development", false},
		{"test", false},
		{"", false},
		{"Production", false},
	}
	for _, tc := range tests {
		if got := (AppConfig{Env: tc.env}).Production(); got != tc.want {
			t.Errorf("Env %q: got %v, want %v", tc.env, got, tc.want)
		}
	}
}

func TestResolvePort(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 3000},
		{"8080", 8080},
		{" 8080 ", 8080},
		{"0", 0},
		{"65535", 65535},
		{"65536", 3000},
		{"-1", 3000},
		{"http", 3000},
		{"80a", 3000},
	}
	for _, tc := range tests {
		if got := ResolvePort(tc.raw); got != tc.want {
			t.Errorf("ResolvePort(%q): got %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func validConfig() AppConfig {
	return AppConfig{
		Env:           "development",
		SessionName:   "conduit.sid",
		SessionMaxAge: 60 * time.Second,
		StaticDir:     "public",
	}
}

func TestValidateConfig(t *testing.T) {
	prod := validConfig()
	prod.Env = EnvProduction
	prod.MongoURI = "mongodb://db.example.com:27017/conduit"
	prod.SessionSecret = "a-production-secret-of-32-chars!"

	noURI := prod
	noURI.MongoURI = ""

	noSecret := prod
	noSecret.SessionSecret = ""

	badAge := validConfig()
	badAge.SessionMaxAge = 0

	subSecond := validConfig()
	subSecond.SessionMaxAge = 500 * time.Millisecond

	oneSecond := validConfig()
	oneSecond.SessionMaxAge = time.Second

	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{"development defaults", validConfig(), false},
		{"production complete", prod, false},
		{"production without uri", noURI, true},
		{"production without secret", noSecret, true},
		{"zero session max age", badAge, true},
		{"sub-second session max age", subSecond, true},
		{"one second session max age", oneSecond, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg, zap.NewNop())
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateConfig: err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSessionSecret(t *testing.T) {
	cfg := validConfig()
	key, err := sessionSecret(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("development: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("generated key length: got %d, want 32", len(key))
	}

	cfg.SessionSecret = "configured"
	key, err = sessionSecret(cfg, zap.NewNop())
	if err != nil || string(key) != "configured" {
		t.Errorf("configured secret: got %q, %v", key, err)
	}

	cfg.SessionSecret = ""
	cfg.Env = EnvProduction
	if _, err := sessionSecret(cfg, zap.NewNop()); err == nil {
		t.Error("expected production without a secret to fail")
	}
}
