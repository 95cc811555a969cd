package notifications

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/printmg/internal/lifecycle"
)

// UnreadCounter reports the unread notification count.
type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Poller refreshes the unread count on a fixed interval. A failed poll is
// logged and retried on the next tick.
type Poller struct {
	source   UnreadCounter
	interval time.Duration
	onChange func(int)
	logger   *slog.Logger

	count  atomic.Int64
	polled atomic.Bool
}

// NewPoller creates a poller. onChange, when set, is called from the polling
// goroutine whenever the count differs from the previous successful poll.
func NewPoller(source UnreadCounter, interval time.Duration, onChange func(int), logger *slog.Logger) *Poller {
	return &Poller{
		source:   source,
		interval: interval,
		onChange: onChange,
		logger:   logger.With("system", "notifications.poller"),
	}
}

// Start polls once immediately, then every interval until the coordinator
// shuts down.
func (p *Poller) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		p.run(lc.Context())
	})
	return nil
}

// Count returns the last polled count and whether any poll has succeeded.
func (p *Poller) Count() (int, bool) {
	return int(p.count.Load()), p.polled.Load()
}

// Ready reports whether a poll has succeeded.
func (p *Poller) Ready() bool {
	return p.polled.Load()
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	n, err := p.source.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("unread count poll failed", "error", err)
		}
		return
	}

	prev := p.count.Swap(int64(n))
	first := !p.polled.Swap(true)
	if (first || prev != int64(n)) && p.onChange != nil {
		p.onChange(n)
	}
}
