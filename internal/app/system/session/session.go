// Package session provides signed, encrypted cookie sessions.
//
// The middleware only loads the session; nothing is written back unless a
// handler calls Save. A brand-new session with no values is never written,
// so anonymous visitors do not receive a cookie.
//
// FromContext and Manager.Save are the handler-facing API: the bootstrap
// mounts no application routes, so their callers are the handlers added on
// top of it.
package session

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

// Options configures a Manager.
type Options struct {
	Secret []byte        // master secret; signing and encryption keys derive from it
	Name   string        // cookie name
	MaxAge time.Duration // cookie lifetime; rounded down to whole seconds
	Secure bool          // mark cookies Secure (HTTPS only)
}

// Manager owns the cookie store.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager. The secret must be non-empty; secrets shorter
// than 32 bytes are accepted with a warning.
func NewManager(opts Options, logger *zap.Logger) (*Manager, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("session secret is empty; provide ≥32 random chars")
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	if opts.MaxAge < time.Second {
		return nil, fmt.Errorf("session max age %s is below one second", opts.MaxAge)
	}
	if len(opts.Secret) < 32 {
		logger.Warn("session secret is short; 32+ chars recommended",
			zap.Int("length", len(opts.Secret)))
	}

	hashKey, blockKey, err := deriveKeys(opts.Secret)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// MaxAge also bounds the codec's timestamp check.
	store.MaxAge(int(opts.MaxAge / time.Second))

	logger.Info("session store initialized",
		zap.String("name", opts.Name),
		zap.Bool("secure", opts.Secure),
		zap.Duration("max_age", opts.MaxAge))

	return &Manager{store: store, name: opts.Name, log: logger}, nil
}

// deriveKeys expands the secret into a 64-byte HMAC key and a 32-byte
// AES-256 key.
func deriveKeys(secret []byte) (hashKey, blockKey []byte, err error) {
	r := hkdf.New(sha256.New, secret, nil, []byte("conduit session cookie"))
	hashKey = make([]byte, 64)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, fmt.Errorf("derive session hash key: %w", err)
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, fmt.Errorf("derive session block key: %w", err)
	}
	return hashKey, blockKey, nil
}

type ctxKey string

const sessionKey ctxKey = "session"

// Middleware loads the request's session into the context. A cookie that
// fails to decode (tampered, expired, or signed with an old secret) is
// replaced by a fresh session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			m.log.Debug("discarding undecodable session cookie", zap.Error(err))
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session loaded by Middleware.
func FromContext(r *http.Request) (*sessions.Session, bool) {
	sess, ok := r.Context().Value(sessionKey).(*sessions.Session)
	return sess, ok && sess != nil
}

// Save writes the request's session cookie. It is a no-op when no session
// was loaded or when the session is new and holds no values.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request) error {
	sess, ok := FromContext(r)
	if !ok {
		return nil
	}
	if sess.IsNew && len(sess.Values) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
