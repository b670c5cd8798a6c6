package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/session"
)

func TestJanitorSweep(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore()
	ctx := context.Background()

	live := session.NewSession("live", "10.0.0.1", "ua", 3600)
	require.NoError(t, store.Create(ctx, live))

	stale := session.NewSession("stale", "10.0.0.2", "ua", 60)
	stale.Updated = time.Now().Unix() - 120
	require.NoError(t, store.Create(ctx, stale))

	j := session.NewJanitor(store, time.Hour, nil)
	j.Sweep(ctx)

	assert.Equal(t, 1, store.Len())

	_, err := store.Resume(ctx, "live")
	assert.NoError(t, err)
	_, err = store.Resume(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestJanitorSweepToleratesStoreFailure(t *testing.T) {
	t.Parallel()
	j := session.NewJanitor(failingStore{}, time.Hour, nil)

	// Must not panic; the failure is logged and the next tick retries.
	j.Sweep(context.Background())
}

func TestJanitorRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore()
	j := session.NewJanitor(store, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}

func TestJanitorRunDisabledInterval(t *testing.T) {
	t.Parallel()
	j := session.NewJanitor(session.NewMemoryStore(), 0, nil)

	done := make(chan struct{})
	go func() {
		j.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("zero interval should disable the loop")
	}
}
