package room

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// Store is durable key-value storage for Room records. Reads are
// consistent with the caller's own writes; visibility of writes from
// other devices is best effort within one polling interval.
type Store interface {
	// Put upserts the room by id. Overwriting is not an error.
	Put(ctx context.Context, r *Room) error

	// Get returns the room with the given id, or (nil, nil) if absent.
	Get(ctx context.Context, id string) (*Room, error)

	// Delete removes the record. Deleting an absent room is not an error.
	Delete(ctx context.Context, id string) error

	// ListByGameType returns all non-stale rooms with state=waiting and
	// no guest for the given game type, newest first.
	ListByGameType(ctx context.Context, gameType string) ([]*Room, error)
}

// probeTimeout bounds the startup reachability check for the remote
// backend.
const probeTimeout = 2 * time.Second

// Select picks the room store backend at startup. If a Redis client is
// configured and reachable, the remote store becomes primary with the
// local store as transparent fallback; otherwise the local store is
// used exclusively. This is a runtime capability check, not a build
// variant.
func Select(ctx context.Context, client *redis.Client, local Store, logger *log.Logger) Store {
	if client == nil {
		return local
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := client.Ping(probeCtx).Err(); err != nil {
		if logger != nil {
			logger.Warn("remote room store unreachable, using local storage", "err", err)
		}
		return local
	}

	return NewFallbackStore(NewRemoteStore(client), local, logger)
}
