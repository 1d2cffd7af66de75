package room

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numbers21py/miniarcades/internal/storage"
)

func newTestStore(t *testing.T, clock clockwork.Clock) *LocalStore {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewLocalStoreWithClock(db, clock)
}

func newTestSession(t *testing.T, self Participant) (*Session, *LocalStore, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)
	s := NewSession(store, self, WithClock(clock))
	t.Cleanup(s.Dispose)

	return s, store, clock
}

func TestCreateRoomWaitingAndGuestless(t *testing.T) {
	s, store, _ := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := s.Create(ctx, "dice")
	require.NoError(t, err)
	assert.Len(t, id, CodeLength)
	assert.True(t, s.IsHost())

	r, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, StateWaiting, r.State)
	assert.Equal(t, "", r.Guest)
	assert.Equal(t, "alice", r.Host)
	assert.Equal(t, "Alice", r.HostName)
	assert.Equal(t, "dice", r.GameType)
}

func TestJoinRoomSuccess(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "rps")
	require.NoError(t, err)

	guest := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer guest.Dispose()

	joined, err := guest.Join(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, joined.State)
	assert.False(t, guest.IsHost())

	r, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, StatePlaying, r.State)
	assert.Equal(t, "bob", r.Guest)
	assert.Equal(t, "Bob", r.GuestName)
}

func TestJoinRoomLowercaseCode(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	guest := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer guest.Dispose()

	_, err = guest.Join(ctx, " "+NormalizeCode(id)+" ")
	assert.NoError(t, err)
}

func TestJoinRoomNotFound(t *testing.T) {
	s, _, _ := newTestSession(t, Participant{ID: "bob", Name: "Bob"})

	_, err := s.Join(context.Background(), "ZZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Equal(t, "", s.RoomID())
}

func TestJoinRoomFullDoesNotMutate(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	first := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer first.Dispose()
	_, err = first.Join(ctx, id)
	require.NoError(t, err)

	before, err := store.Get(ctx, id)
	require.NoError(t, err)

	second := NewSession(store, Participant{ID: "carol", Name: "Carol"}, WithClock(clock))
	defer second.Dispose()
	_, err = second.Join(ctx, id)
	assert.ErrorIs(t, err, ErrRoomFull)

	after, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed join must not mutate the record")
}

func TestJoinRoomNotAvailable(t *testing.T) {
	s, store, clock := newTestSession(t, Participant{ID: "bob", Name: "Bob"})
	ctx := context.Background()

	// A corrupt record: mid-game but guestless. Join must refuse it.
	now := clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, &Room{
		ID:         "AAAAA",
		GameType:   "dice",
		Host:       "alice",
		HostName:   "Alice",
		State:      StatePlaying,
		Created:    now,
		LastUpdate: now,
	}))

	_, err := s.Join(ctx, "AAAAA")
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestJoinStaleRoomTreatedAsAbsent(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	clock.Advance(Staleness + time.Second)

	guest := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer guest.Dispose()

	_, err = guest.Join(ctx, id)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	// Lazy eviction: encountering the stale room removed it.
	r, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestHostLeaveDeletesRoom(t *testing.T) {
	host, store, _ := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	require.NoError(t, host.Leave(ctx))
	assert.Equal(t, "", host.RoomID())

	r, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestGuestLeaveResetsRoom(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	guest := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer guest.Dispose()
	_, err = guest.Join(ctx, id)
	require.NoError(t, err)

	require.NoError(t, guest.Leave(ctx))

	r, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, r, "room must survive a guest leave")
	assert.Equal(t, StateWaiting, r.State)
	assert.Equal(t, "", r.Guest)
	assert.Equal(t, "", r.GuestName)
}

func TestLeaveWithoutRoomIsNoop(t *testing.T) {
	s, _, _ := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	assert.NoError(t, s.Leave(context.Background()))
}

func TestGuestLeaveAbsentRoomIsSuccess(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	guest := NewSession(store, Participant{ID: "bob", Name: "Bob"}, WithClock(clock))
	defer guest.Dispose()
	_, err = guest.Join(ctx, id)
	require.NoError(t, err)

	// Host tears the room down first.
	require.NoError(t, host.Leave(ctx))

	assert.NoError(t, guest.Leave(ctx))
}

func TestUpdatePayload(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	id, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	before, err := store.Get(ctx, id)
	require.NoError(t, err)

	clock.Advance(time.Second)
	host.UpdatePayload(ctx, json.RawMessage(`{"roll":6}`))

	after, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"roll":6}`, string(after.GameState))
	assert.Greater(t, after.LastUpdate, before.LastUpdate)
}

func TestUpdatePayloadWithoutRoomIsSilent(t *testing.T) {
	s, _, _ := newTestSession(t, Participant{ID: "alice", Name: "Alice"})

	// Must not panic or error; this runs inside UI event handlers.
	s.UpdatePayload(context.Background(), json.RawMessage(`{"x":1}`))
}

func TestListOpenExcludesStaleAndPlaying(t *testing.T) {
	host, store, clock := newTestSession(t, Participant{ID: "alice", Name: "Alice"})
	ctx := context.Background()

	old := clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, &Room{
		ID: "SSSSS", GameType: "dice", Host: "x", HostName: "X",
		State: StateWaiting, Created: old, LastUpdate: old,
	}))

	clock.Advance(Staleness + time.Second)

	open, err := host.Create(ctx, "dice")
	require.NoError(t, err)

	playingAt := clock.Now().UnixMilli()
	require.NoError(t, store.Put(ctx, &Room{
		ID: "BBBBB", GameType: "dice", Host: "y", HostName: "Y", Guest: "z", GuestName: "Z",
		State: StatePlaying, Created: playingAt, LastUpdate: playingAt,
	}))

	rooms, err := host.ListOpen(ctx, "dice")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, open, rooms[0].ID)
}

// stubStore always reports a live room, forcing code regeneration.
type stubStore struct {
	clock clockwork.Clock
}

func (st *stubStore) Put(context.Context, *Room) error     { return nil }
func (st *stubStore) Delete(context.Context, string) error { return nil }
func (st *stubStore) ListByGameType(context.Context, string) ([]*Room, error) {
	return nil, nil
}
func (st *stubStore) Get(_ context.Context, id string) (*Room, error) {
	now := st.clock.Now().UnixMilli()
	return &Room{ID: id, State: StateWaiting, Created: now, LastUpdate: now}, nil
}

func TestCreateFailsWhenRetriesExhaust(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSession(&stubStore{clock: clock}, Participant{ID: "alice", Name: "Alice"}, WithClock(clock))
	defer s.Dispose()

	_, err := s.Create(context.Background(), "dice")
	assert.ErrorIs(t, err, ErrCreateFailed)
}
