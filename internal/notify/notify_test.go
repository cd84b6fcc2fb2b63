package notify

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNotifierDeliversSignals(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	sub, err := n.Subscribe(ctx, "ch")
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, n.Publish(ctx, "ch"))

	select {
	case _, ok := <-sub.Signals():
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestMemoryNotifierScopesChannels(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	sub, err := n.Subscribe(ctx, "ch-a")
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, n.Publish(ctx, "ch-b"))

	select {
	case <-sub.Signals():
		t.Fatal("signal leaked across channels")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryNotifierCancelClosesStream(t *testing.T) {
	n := NewMemoryNotifier()

	sub, err := n.Subscribe(context.Background(), "ch")
	require.NoError(t, err)
	sub.Cancel()

	_, ok := <-sub.Signals()
	assert.False(t, ok)

	// Publishing after cancel must not panic or block.
	require.NoError(t, n.Publish(context.Background(), "ch"))
}

func TestWatchEmitsInitialAndPerChangeSnapshots(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	var version atomic.Int64
	load := func(context.Context) (int64, error) {
		return version.Load(), nil
	}

	snapshots, stop, err := Watch(ctx, n, "ch", load)
	require.NoError(t, err)
	defer stop()

	select {
	case got := <-snapshots:
		assert.Equal(t, int64(0), got)
	case <-time.After(time.Second):
		t.Fatal("expected an initial snapshot")
	}

	version.Store(1)
	require.NoError(t, n.Publish(ctx, "ch"))

	select {
	case got := <-snapshots:
		assert.Equal(t, int64(1), got)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot after the change signal")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	n := NewMemoryNotifier()

	load := func(context.Context) (int, error) { return 42, nil }
	snapshots, stop, err := Watch(context.Background(), n, "ch", load)
	require.NoError(t, err)

	<-snapshots
	stop()

	select {
	case _, ok := <-snapshots:
		assert.False(t, ok, "stream must end after stop")
	case <-time.After(time.Second):
		t.Fatal("stream did not close after stop")
	}
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "group:g1:shortlist", ShortlistChannel("g1"))
	assert.Equal(t, "group:g1:events", EventsChannel("g1"))
	assert.Equal(t, "group:g1:polls", PollsChannel("g1"))
	assert.Equal(t, "wishlists", WishlistsChannel())
}
