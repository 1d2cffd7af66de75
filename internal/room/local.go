package room

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/numbers21py/miniarcades/internal/storage"
)

// LocalStore persists rooms in the on-device SQLite database. It is the
// default backend and the fallback target when the remote store fails.
type LocalStore struct {
	db    *storage.Store
	clock clockwork.Clock
}

// NewLocalStore creates a local room store over the given database.
func NewLocalStore(db *storage.Store) *LocalStore {
	return &LocalStore{db: db, clock: clockwork.NewRealClock()}
}

// NewLocalStoreWithClock creates a local store with an injected clock,
// used by tests to control staleness.
func NewLocalStoreWithClock(db *storage.Store, clock clockwork.Clock) *LocalStore {
	return &LocalStore{db: db, clock: clock}
}

// Put implements Store.
func (ls *LocalStore) Put(_ context.Context, r *Room) error {
	return ls.db.SaveRoom(toRecord(r))
}

// Get implements Store.
func (ls *LocalStore) Get(_ context.Context, id string) (*Room, error) {
	rec, err := ls.db.LoadRoom(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return fromRecord(rec), nil
}

// Delete implements Store.
func (ls *LocalStore) Delete(_ context.Context, id string) error {
	return ls.db.DeleteRoom(id)
}

// ListByGameType implements Store. Stale rooms are evicted lazily here,
// since listing is when they are encountered.
func (ls *LocalStore) ListByGameType(_ context.Context, gameType string) ([]*Room, error) {
	cutoff := ls.clock.Now().Add(-Staleness).UnixMilli()

	// Lazy eviction of abandoned rooms, best effort.
	_, _ = ls.db.PruneRooms(cutoff)

	records, err := ls.db.ListRoomsByGameType(gameType, string(StateWaiting), cutoff)
	if err != nil {
		return nil, err
	}

	rooms := make([]*Room, 0, len(records))
	for i := range records {
		r := fromRecord(&records[i])
		if r.HasGuest() {
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func toRecord(r *Room) storage.RoomRecord {
	return storage.RoomRecord{
		ID:         r.ID,
		GameType:   r.GameType,
		Host:       r.Host,
		HostName:   r.HostName,
		Guest:      r.Guest,
		GuestName:  r.GuestName,
		State:      string(r.State),
		GameState:  r.GameState,
		Created:    r.Created,
		LastUpdate: r.LastUpdate,
	}
}

func fromRecord(rec *storage.RoomRecord) *Room {
	return &Room{
		ID:         rec.ID,
		GameType:   rec.GameType,
		Host:       rec.Host,
		HostName:   rec.HostName,
		Guest:      rec.Guest,
		GuestName:  rec.GuestName,
		State:      State(rec.State),
		GameState:  rec.GameState,
		Created:    rec.Created,
		LastUpdate: rec.LastUpdate,
	}
}
