// Package session holds the signed-in identity of the client: a bearer token
// and a role, persisted either durably ("remember me") or for the current
// machine session only.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/printmg/internal/storage"
)

const sessionKey = "session.toml"

var (
	ErrNoToken     = errors.New("session: token required")
	ErrUnknownRole = errors.New("session: unknown role")
)

// Role is the access level granted by the backend.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts a backend role code, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
	}
}

// Session is the persisted identity.
type Session struct {
	Token     string `toml:"token"`
	Role      Role   `toml:"role"`
	Persisted bool   `toml:"-"`
}

// Store reads and writes the session. Only login and logout write it.
type Store struct {
	mu      sync.Mutex
	durable storage.System
	scoped  storage.System
	logger  *slog.Logger
}

// NewStore creates a session store over a durable and a scoped backend.
func NewStore(durable, scoped storage.System, logger *slog.Logger) *Store {
	return &Store{
		durable: durable,
		scoped:  scoped,
		logger:  logger.With("system", "session"),
	}
}

// Login records token and role. With persist the session goes to the durable
// backend, otherwise to the scoped one; the other backend is cleared.
func (s *Store) Login(ctx context.Context, token string, role Role, persist bool) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}

	data, err := toml.Marshal(Session{Token: token, Role: role})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	target, other := s.scoped, s.durable
	if persist {
		target, other = s.durable, s.scoped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The stale copy goes first so a failed login never leaves the new
	// session written.
	if err := other.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := target.Store(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("session opened", "role", role, "persist", persist)
	return nil
}

// Logout removes the session from both backends.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := []error{
		s.durable.Delete(ctx, sessionKey),
		s.scoped.Delete(ctx, sessionKey),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info("session closed")
	return nil
}

// Current returns the active session, reading the durable backend first.
func (s *Store) Current(ctx context.Context) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.read(ctx, s.durable); ok {
		sess.Persisted = true
		return sess, true
	}
	return s.read(ctx, s.scoped)
}

// Token returns the bearer token of the active session.
func (s *Store) Token(ctx context.Context) (string, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return "", false
	}
	return sess.Token, true
}

func (s *Store) read(ctx context.Context, backend storage.System) (Session, bool) {
	data, err := backend.Retrieve(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read session failed", "error", err)
		}
		return Session{}, false
	}

	var sess Session
	if err := toml.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("discarding unreadable session", "error", err)
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	if _, err := ParseRole(string(sess.Role)); err != nil {
		s.logger.Warn("discarding session with unknown role", "role", sess.Role)
		return Session{}, false
	}

	return sess, true
}
