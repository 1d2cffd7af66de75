package room

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFallbackFixture(t *testing.T) (*FallbackStore, *LocalStore, *miniredis.Miniredis, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	remote, mr := newTestRemoteStore(t, clock)
	local := newTestStore(t, clock)

	return NewFallbackStore(remote, local, nil), local, mr, clock
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	fs, local, _, clock := newFallbackFixture(t)
	ctx := context.Background()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "A7K2P", GameType: "dice", Host: "a", HostName: "A",
		State: StateWaiting, Created: now, LastUpdate: now}
	require.NoError(t, fs.Put(ctx, r))

	got, err := fs.Get(ctx, "A7K2P")
	require.NoError(t, err)
	require.NotNil(t, got)

	// The record lives in the remote backend, not the local one.
	localGot, err := local.Get(ctx, "A7K2P")
	require.NoError(t, err)
	assert.Nil(t, localGot)
}

func TestFallbackAbsorbsPrimaryOutage(t *testing.T) {
	fs, local, mr, clock := newFallbackFixture(t)
	ctx := context.Background()

	mr.Close()

	now := clock.Now().UnixMilli()
	r := &Room{ID: "BBBBB", GameType: "rps", Host: "a", HostName: "A",
		State: StateWaiting, Created: now, LastUpdate: now}

	// Every operation succeeds via the local fallback; the outage never
	// surfaces as an error.
	require.NoError(t, fs.Put(ctx, r))

	got, err := fs.Get(ctx, "BBBBB")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rps", got.GameType)

	rooms, err := fs.ListByGameType(ctx, "rps")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "BBBBB", rooms[0].ID)

	require.NoError(t, fs.Delete(ctx, "BBBBB"))

	localGot, err := local.Get(ctx, "BBBBB")
	require.NoError(t, err)
	assert.Nil(t, localGot)
}

func TestSelectPrefersReachableRemote(t *testing.T) {
	clock := clockwork.NewFakeClock()
	local := newTestStore(t, clock)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := Select(context.Background(), client, local, nil)
	_, ok := store.(*FallbackStore)
	assert.True(t, ok)
}

func TestSelectFallsBackWhenUnreachable(t *testing.T) {
	clock := clockwork.NewFakeClock()
	local := newTestStore(t, clock)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	store := Select(context.Background(), client, local, nil)
	assert.Equal(t, local, store)
}

func TestSelectWithoutClientUsesLocal(t *testing.T) {
	clock := clockwork.NewFakeClock()
	local := newTestStore(t, clock)

	store := Select(context.Background(), nil, local, nil)
	assert.Equal(t, local, store)
}
