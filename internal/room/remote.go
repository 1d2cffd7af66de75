package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

const (
	roomKeyPrefix = "room:"

	// roomExpiration is backend hygiene on top of the 5-minute lazy
	// staleness eviction, so abandoned records cannot pile up forever.
	roomExpiration = 2 * time.Hour
)

// RemoteStore persists rooms in a shared Redis instance so two devices
// can see the same record. Every operation can fail with a network
// error; callers wrap it in a FallbackStore rather than handling that.
type RemoteStore struct {
	client *redis.Client
	clock  clockwork.Clock
}

// NewRemoteStore creates a Redis-backed room store.
func NewRemoteStore(client *redis.Client) *RemoteStore {
	return &RemoteStore{client: client, clock: clockwork.NewRealClock()}
}

// NewRemoteStoreWithClock creates a remote store with an injected clock,
// used by tests to control staleness.
func NewRemoteStoreWithClock(client *redis.Client, clock clockwork.Clock) *RemoteStore {
	return &RemoteStore{client: client, clock: clock}
}

// Put implements Store.
func (rs *RemoteStore) Put(ctx context.Context, r *Room) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", r.ID, err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+r.ID, data, roomExpiration).Err()
}

// Get implements Store.
func (rs *RemoteStore) Get(ctx context.Context, id string) (*Room, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var r Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", id, err)
	}
	return &r, nil
}

// Delete implements Store.
func (rs *RemoteStore) Delete(ctx context.Context, id string) error {
	return rs.client.Del(ctx, roomKeyPrefix+id).Err()
}

// ListByGameType implements Store. Stale records encountered during the
// scan are deleted, best effort.
func (rs *RemoteStore) ListByGameType(ctx context.Context, gameType string) ([]*Room, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	now := rs.clock.Now()
	var rooms []*Room
	for _, key := range keys {
		data, err := rs.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired between KEYS and GET
			}
			return nil, err
		}

		var r Room
		if err := json.Unmarshal(data, &r); err != nil {
			continue // skip unreadable records
		}

		if r.StaleAt(now) {
			_ = rs.client.Del(ctx, key).Err()
			continue
		}

		if r.GameType != gameType || r.State != StateWaiting || r.HasGuest() {
			continue
		}
		rooms = append(rooms, &r)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Created > rooms[j].Created
	})

	return rooms, nil
}
