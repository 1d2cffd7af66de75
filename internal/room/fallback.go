package room

import (
	"context"

	"github.com/charmbracelet/log"
)

// FallbackStore decorates a primary (remote) store with a local
// fallback. Any primary failure is absorbed: the operation is retried
// against the fallback and no error is surfaced to the caller for the
// outage itself. This keeps the fallback branching out of every
// operation in the controller.
type FallbackStore struct {
	primary  Store
	fallback Store
	logger   *log.Logger
}

// NewFallbackStore creates a fallback-decorated store.
func NewFallbackStore(primary, fallback Store, logger *log.Logger) *FallbackStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FallbackStore{primary: primary, fallback: fallback, logger: logger}
}

// Put implements Store.
func (fs *FallbackStore) Put(ctx context.Context, r *Room) error {
	if err := fs.primary.Put(ctx, r); err != nil {
		fs.logger.Warn("remote room store put failed, falling back", "room", r.ID, "err", err)
		return fs.fallback.Put(ctx, r)
	}
	return nil
}

// Get implements Store.
func (fs *FallbackStore) Get(ctx context.Context, id string) (*Room, error) {
	r, err := fs.primary.Get(ctx, id)
	if err != nil {
		fs.logger.Warn("remote room store get failed, falling back", "room", id, "err", err)
		return fs.fallback.Get(ctx, id)
	}
	return r, nil
}

// Delete implements Store.
func (fs *FallbackStore) Delete(ctx context.Context, id string) error {
	if err := fs.primary.Delete(ctx, id); err != nil {
		fs.logger.Warn("remote room store delete failed, falling back", "room", id, "err", err)
		return fs.fallback.Delete(ctx, id)
	}
	return nil
}

// ListByGameType implements Store.
func (fs *FallbackStore) ListByGameType(ctx context.Context, gameType string) ([]*Room, error) {
	rooms, err := fs.primary.ListByGameType(ctx, gameType)
	if err != nil {
		fs.logger.Warn("remote room store list failed, falling back", "gameType", gameType, "err", err)
		return fs.fallback.ListByGameType(ctx, gameType)
	}
	return rooms, nil
}
