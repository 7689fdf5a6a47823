package poller

import (
	"context"
	"time"

	"food-corner/internal/logger"
	"food-corner/internal/models"
)

// FetchFunc retrieves the current order list from the store.
type FetchFunc func(ctx context.Context) ([]models.Order, error)

// ApplyFunc replaces the caller's displayed snapshot with a fresh one. The
// store's snapshot always wins over whatever the caller showed before.
type ApplyFunc func(orders []models.Order)

// GrowthFunc is invoked when a tick observes more orders than the previous
// successful tick did. It fires at most once per tick regardless of how many
// orders arrived.
type GrowthFunc func(current, previous int)

// Loop is a fixed-interval refresh loop. Each tick fetches the full order
// list and hands it to the apply callback; a failed fetch leaves both the
// snapshot and the growth baseline untouched, so a transient store outage
// cannot skew the next comparison.
type Loop struct {
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc
	onGrowth GrowthFunc
	logger   *logger.Logger

	prevCount int
	primed    bool
}

// New creates a loop. The growth callback is optional; customer-facing views
// poll without one.
func New(interval time.Duration, fetch FetchFunc, apply ApplyFunc, log *logger.Logger) *Loop {
	return &Loop{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		logger:   log,
	}
}

// OnGrowth installs the new-order callback.
func (l *Loop) OnGrowth(fn GrowthFunc) {
	l.onGrowth = fn
}

// Run ticks immediately, then on every interval until ctx is cancelled.
// Ticks are strictly sequential: the next fetch never starts before the
// previous tick has finished applying its snapshot.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("poll_stopped", "Polling loop stopped", "", nil)
			return ctx.Err()
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick performs a single fetch-and-apply cycle.
func (l *Loop) Tick(ctx context.Context) {
	orders, err := l.fetch(ctx)
	if err != nil {
		l.logger.Error("poll_failed", "Order fetch failed, keeping previous snapshot", "", err, nil)
		return
	}

	l.apply(orders)

	count := len(orders)
	if l.primed && count > l.prevCount && l.onGrowth != nil {
		l.onGrowth(count, l.prevCount)
	}
	l.prevCount = count
	l.primed = true
}
