package session

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Janitor periodically deletes expired session records. It runs outside the
// request path on its own ticker; a failed sweep is logged and retried on
// the next tick, never terminating the loop.
type Janitor struct {
	store    Store
	interval time.Duration
	log      *slog.Logger
}

// NewJanitor creates a janitor sweeping the given store. A nil logger
// discards sweep errors silently.
func NewJanitor(store Store, interval time.Duration, log *slog.Logger) *Janitor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Janitor{store: store, interval: interval, log: log}
}

// Run blocks, sweeping every interval until ctx is canceled. Intended to be
// launched as a single goroutine at startup.
func (j *Janitor) Run(ctx context.Context) {
	if j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass.
func (j *Janitor) Sweep(ctx context.Context) {
	if err := j.store.DeleteExpired(ctx, time.Now().Unix()); err != nil {
		j.log.ErrorContext(ctx, "session sweep failed", slog.Any("error", err))
	}
}
