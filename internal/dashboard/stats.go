// Package dashboard serves the statistics shown on the user and admin
// dashboards and the admin user list.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/printmg/internal/backend"
)

// Source is the backend surface of the dashboards.
type Source interface {
	AdminDashboard(ctx context.Context) (*backend.AdminDashboard, error)
	AdminOrdersCount(ctx context.Context) (int, error)
	UserDashboard(ctx context.Context) (*backend.UserDashboard, error)
	Users(ctx context.Context) ([]backend.User, error)
}

type entry[T any] struct {
	value   T
	fetched time.Time
	ok      bool
}

// Stats caches dashboard aggregates for a fixed TTL. A forced read always
// fetches.
type Stats struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	admin  entry[*backend.AdminDashboard]
	user   entry[*backend.UserDashboard]
	orders entry[int]
}

// Option configures Stats.
type Option func(*Stats)

// WithClock replaces the clock used to age cache entries.
func WithClock(now func() time.Time) Option {
	return func(s *Stats) {
		s.now = now
	}
}

// NewStats creates a statistics cache holding entries for ttl.
func NewStats(source Source, ttl time.Duration, logger *slog.Logger, opts ...Option) *Stats {
	s := &Stats{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("system", "dashboard"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admin returns the admin dashboard.
func (s *Stats) Admin(ctx context.Context, force bool) (*backend.AdminDashboard, error) {
	return cached(s, &s.admin, "admin", force, func() (*backend.AdminDashboard, error) {
		return s.source.AdminDashboard(ctx)
	})
}

// User returns the dashboard of the signed-in user.
func (s *Stats) User(ctx context.Context, force bool) (*backend.UserDashboard, error) {
	return cached(s, &s.user, "user", force, func() (*backend.UserDashboard, error) {
		return s.source.UserDashboard(ctx)
	})
}

// OrdersCount returns the platform-wide order count.
func (s *Stats) OrdersCount(ctx context.Context, force bool) (int, error) {
	return cached(s, &s.orders, "orders_count", force, func() (int, error) {
		return s.source.AdminOrdersCount(ctx)
	})
}

// Invalidate drops every cached entry.
func (s *Stats) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = entry[*backend.AdminDashboard]{}
	s.user = entry[*backend.UserDashboard]{}
	s.orders = entry[int]{}
}

// cached holds the lock across the fetch; concurrent readers of an expired
// entry wait for a single request.
func cached[T any](s *Stats, e *entry[T], name string, force bool, fetch func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !force && e.ok && now.Sub(e.fetched) < s.ttl {
		return e.value, nil
	}

	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	*e = entry[T]{value: v, fetched: now, ok: true}
	s.logger.Debug("stats refreshed", "stats", name, "forced", force)
	return v, nil
}
