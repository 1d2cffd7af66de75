package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// createRetries bounds regeneration when a fresh code collides with a
// live room.
const createRetries = 8

// Session is the lifecycle controller for one participant's multiplayer
// session. It enforces valid room state transitions, assigns identity,
// and owns the polling subscription for the joined room. Construct one
// per UI session and call Dispose on teardown; there are no package
// globals.
type Session struct {
	store  Store
	self   Participant
	clock  clockwork.Clock
	logger *log.Logger
	share  ShareFunc
	poller *Poller

	mu     sync.Mutex
	roomID string
	isHost bool
	last   *Room // cached copy of the last-seen record, never authoritative
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock injects a clock, used by tests for deterministic time.
func WithClock(clock clockwork.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithLogger injects a logger.
func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithShare injects the share-link capability provided by the host
// layer.
func WithShare(share ShareFunc) SessionOption {
	return func(s *Session) { s.share = share }
}

// NewSession creates a session for the given participant.
func NewSession(store Store, self Participant, opts ...SessionOption) *Session {
	s := &Session{
		store: store,
		self:  self,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.poller = NewPoller(store, s.clock, s.logger)
	return s
}

// Create generates a fresh room for the game type, persists it in the
// waiting state, and marks the caller as host. The returned id is a
// 5-character human-shareable code. Collisions with live rooms trigger
// regeneration; exhausting retries yields ErrCreateFailed.
func (s *Session) Create(ctx context.Context, gameType string) (string, error) {
	for attempt := 0; attempt < createRetries; attempt++ {
		code := GenerateCode()

		existing, err := s.store.Get(ctx, code)
		if err != nil {
			s.logger.Warn("room collision check failed", "room", code, "err", err)
			continue
		}
		if existing != nil && !existing.StaleAt(s.clock.Now()) {
			continue // live collision, regenerate
		}

		now := s.clock.Now().UnixMilli()
		r := &Room{
			ID:         code,
			GameType:   gameType,
			Host:       s.self.ID,
			HostName:   s.self.Name,
			State:      StateWaiting,
			Created:    now,
			LastUpdate: now,
		}

		if err := s.store.Put(ctx, r); err != nil {
			return "", err
		}

		s.mu.Lock()
		s.roomID = code
		s.isHost = true
		s.last = r.Clone()
		s.mu.Unlock()

		return code, nil
	}

	return "", ErrCreateFailed
}

// Join enters an existing room as guest. Absent and abandoned rooms
// yield ErrRoomNotFound; an occupied guest slot yields ErrRoomFull
// without mutating the record; a room mid-game yields
// ErrRoomNotAvailable.
func (s *Session) Join(ctx context.Context, id string) (*Room, error) {
	id = NormalizeCode(id)

	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRoomNotFound
	}
	if r.StaleAt(s.clock.Now()) {
		// Lazy eviction: an abandoned room is as good as absent.
		_ = s.store.Delete(ctx, id)
		return nil, ErrRoomNotFound
	}
	if r.HasGuest() {
		return nil, ErrRoomFull
	}
	if r.State != StateWaiting {
		return nil, ErrRoomNotAvailable
	}

	r.Guest = s.self.ID
	r.GuestName = s.self.Name
	r.State = StatePlaying
	r.LastUpdate = s.clock.Now().UnixMilli()

	if err := s.store.Put(ctx, r); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.roomID = id
	s.isHost = false
	s.last = r.Clone()
	s.mu.Unlock()

	return r.Clone(), nil
}

// Leave exits the current room. A host deletes the record, ending the
// session for both sides; a guest resets the room to waiting so it
// becomes available again. Leaving an absent room is success, and
// leaving with no room joined is a no-op. Polling always stops.
func (s *Session) Leave(ctx context.Context) error {
	s.poller.Stop()

	s.mu.Lock()
	id := s.roomID
	isHost := s.isHost
	s.roomID = ""
	s.isHost = false
	s.last = nil
	s.mu.Unlock()

	if id == "" {
		return nil
	}

	if isHost {
		return s.store.Delete(ctx, id)
	}

	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return nil // already gone, leaving is still success
	}

	r.Guest = ""
	r.GuestName = ""
	r.State = StateWaiting
	r.LastUpdate = s.clock.Now().UnixMilli()

	return s.store.Put(ctx, r)
}

// UpdatePayload overwrites the opaque game payload on the current room.
// Deliberately non-fatal: it is invoked from UI event handlers that
// must not crash the session, so failures are logged, never returned.
func (s *Session) UpdatePayload(ctx context.Context, payload json.RawMessage) {
	s.mu.Lock()
	id := s.roomID
	s.mu.Unlock()

	if id == "" {
		s.logger.Debug("payload update with no room joined")
		return
	}

	r, err := s.store.Get(ctx, id)
	if err != nil || r == nil {
		s.logger.Warn("payload update could not load room", "room", id, "err", err)
		return
	}

	r.GameState = payload
	r.LastUpdate = s.clock.Now().UnixMilli()

	if err := s.store.Put(ctx, r); err != nil {
		s.logger.Warn("payload update failed", "room", id, "err", err)
		return
	}

	s.mu.Lock()
	s.last = r.Clone()
	s.mu.Unlock()
}

// Watch starts polling the current room at the given cadence. Handlers
// replace any previous subscription; its callbacks will not fire again.
func (s *Session) Watch(ctx context.Context, interval time.Duration, h PollHandlers) {
	s.mu.Lock()
	id := s.roomID
	var since int64
	if s.last != nil {
		since = s.last.LastUpdate
	}
	s.mu.Unlock()

	if id == "" {
		return
	}

	wrapped := PollHandlers{
		OnUpdate: func(r *Room) {
			s.mu.Lock()
			s.last = r.Clone()
			s.mu.Unlock()
			if h.OnUpdate != nil {
				h.OnUpdate(r)
			}
		},
		OnClosed: h.OnClosed,
	}

	s.poller.Start(ctx, id, interval, since, wrapped)
}

// Dispose tears the session down, cancelling any running poller. Safe
// to call multiple times.
func (s *Session) Dispose() {
	s.poller.Stop()
}

// RoomID returns the joined room id, or "" when idle.
func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// IsHost reports whether this participant created the current room.
func (s *Session) IsHost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isHost
}

// Current returns a copy of the last-seen room record, or nil.
func (s *Session) Current() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Clone()
}

// Self returns this session's participant identity.
func (s *Session) Self() Participant {
	return s.self
}

// OpponentName returns the display name of the other participant, or ""
// when unknown.
func (s *Session) OpponentName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return ""
	}
	if s.isHost {
		return s.last.GuestName
	}
	return s.last.HostName
}

// ShareLink composes a shareable deep link for the current room via the
// injected capability. Returns "" when idle or when no capability was
// provided.
func (s *Session) ShareLink() string {
	s.mu.Lock()
	id := s.roomID
	var gameType string
	if s.last != nil {
		gameType = s.last.GameType
	}
	s.mu.Unlock()

	if id == "" || s.share == nil {
		return ""
	}
	return s.share(id, gameType)
}

// ListOpen returns the joinable rooms for a game type, for the lobby
// browser. Order is newest first.
func (s *Session) ListOpen(ctx context.Context, gameType string) ([]*Room, error) {
	return s.store.ListByGameType(ctx, gameType)
}
