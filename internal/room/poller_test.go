package room

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForRoom(t *testing.T, ch <-chan *Room) *Room {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return nil
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for signal")
	}
}

func assertNoRoom(t *testing.T, ch <-chan *Room) {
	t.Helper()
	select {
	case r := <-ch:
		t.Fatalf("unexpected update: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollerObservesChangeWithinOneInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "A7K2P", GameType: "dice", Host: "alice", HostName: "Alice",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, r))

	p := NewPoller(store, clock, nil)
	defer p.Stop()

	updates := make(chan *Room, 4)
	p.Start(ctx, "A7K2P", FastPoll, r.LastUpdate, PollHandlers{
		OnUpdate: func(r *Room) { updates <- r },
	})

	// A guest joins between ticks.
	clock.Advance(100 * time.Millisecond)
	r.Guest = "bob"
	r.GuestName = "Bob"
	r.State = StatePlaying
	r.LastUpdate = clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, r))

	clock.BlockUntil(1)
	clock.Advance(FastPoll)

	got := waitForRoom(t, updates)
	assert.Equal(t, StatePlaying, got.State)
	assert.Equal(t, "bob", got.Guest)
}

func TestPollerIgnoresUnchangedRecord(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "AAAAA", GameType: "dice", Host: "alice", HostName: "Alice",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, r))

	p := NewPoller(store, clock, nil)
	defer p.Stop()

	updates := make(chan *Room, 4)
	p.Start(ctx, "AAAAA", FastPoll, r.LastUpdate, PollHandlers{
		OnUpdate: func(r *Room) { updates <- r },
	})

	clock.BlockUntil(1)
	clock.Advance(FastPoll)
	clock.BlockUntil(1)
	clock.Advance(FastPoll)

	assertNoRoom(t, updates)
}

func TestPollerReportsRoomClosed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "BBBBB", GameType: "rps", Host: "alice", HostName: "Alice",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, r))

	p := NewPoller(store, clock, nil)
	defer p.Stop()

	closed := make(chan struct{}, 1)
	p.Start(ctx, "BBBBB", FastPoll, r.LastUpdate, PollHandlers{
		OnClosed: func() { closed <- struct{}{} },
	})

	require.NoError(t, store.Delete(ctx, "BBBBB"))

	clock.BlockUntil(1)
	clock.Advance(FastPoll)

	waitForSignal(t, closed)
	p.Stop() // ensure the goroutine is gone before asserting
	assert.False(t, p.Active())
}

func TestPollerTreatsStaleRoomAsClosed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "CCCCC", GameType: "dice", Host: "alice", HostName: "Alice",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, r))

	p := NewPoller(store, clock, nil)
	defer p.Stop()

	closed := make(chan struct{}, 1)
	p.Start(ctx, "CCCCC", FastPoll, r.LastUpdate, PollHandlers{
		OnClosed: func() { closed <- struct{}{} },
	})

	clock.BlockUntil(1)
	clock.Advance(Staleness + time.Second)

	waitForSignal(t, closed)
}

func TestStartReplacesPriorSubscription(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	first := &Room{ID: "DDDDD", GameType: "dice", Host: "a", HostName: "A",
		State: StateWaiting, Created: now, LastUpdate: now}
	second := &Room{ID: "EEEEE", GameType: "dice", Host: "b", HostName: "B",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, first))
	require.NoError(t, store.Put(ctx, second))

	p := NewPoller(store, clock, nil)
	defer p.Stop()

	firstUpdates := make(chan *Room, 4)
	p.Start(ctx, "DDDDD", FastPoll, first.LastUpdate, PollHandlers{
		OnUpdate: func(r *Room) { firstUpdates <- r },
	})

	secondUpdates := make(chan *Room, 4)
	p.Start(ctx, "EEEEE", FastPoll, second.LastUpdate, PollHandlers{
		OnUpdate: func(r *Room) { secondUpdates <- r },
	})

	// Mutate both rooms; only the second subscription may observe.
	clock.Advance(time.Millisecond)
	first.LastUpdate = clock.Now().UnixMilli()
	second.LastUpdate = clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, first))
	require.NoError(t, store.Put(ctx, second))

	clock.BlockUntil(1)
	clock.Advance(FastPoll)

	waitForRoom(t, secondUpdates)
	assertNoRoom(t, firstUpdates)
}

func TestStopIsSynchronousAndIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "FFFFF", GameType: "dice", Host: "a", HostName: "A",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, store.Put(ctx, r))

	p := NewPoller(store, clock, nil)

	updates := make(chan *Room, 4)
	p.Start(ctx, "FFFFF", FastPoll, r.LastUpdate, PollHandlers{
		OnUpdate: func(r *Room) { updates <- r },
	})

	p.Stop()
	p.Stop() // second call must not panic or block
	assert.False(t, p.Active())

	// No callback may fire after Stop has returned.
	clock.Advance(time.Millisecond)
	r.LastUpdate = clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, r))
	clock.Advance(FastPoll)

	assertNoRoom(t, updates)
}
