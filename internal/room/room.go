// Package room implements two-party multiplayer rooms: a key-value room
// store with interchangeable backends, a lifecycle controller enforcing
// valid state transitions, and a polling synchronizer that simulates
// real-time updates over a store with no native push mechanism.
package room

import (
	"encoding/json"
	"time"
)

// State is the lifecycle state of a room.
type State string

const (
	// StateWaiting means the host is waiting for a guest.
	StateWaiting State = "waiting"
	// StatePlaying means both participants are present.
	StatePlaying State = "playing"
)

// Staleness is how long a room may go without an update before it is
// considered abandoned. Stale rooms are excluded from listings, treated
// as absent by the poller, and evicted lazily when encountered.
const Staleness = 5 * time.Minute

// Polling cadences. Fast while waiting for a guest or exchanging moves,
// slow while merely browsing the open-room list.
const (
	FastPoll = 500 * time.Millisecond
	SlowPoll = 2 * time.Second
)

// Room is the shared record representing one two-party game session.
// JSON field names are the wire/storage contract and must not change.
type Room struct {
	ID         string          `json:"id"`
	GameType   string          `json:"gameType"`
	Host       string          `json:"host"`
	HostName   string          `json:"hostName"`
	Guest      string          `json:"guest"`
	GuestName  string          `json:"guestName"`
	State      State           `json:"state"`
	GameState  json.RawMessage `json:"gameState"`
	Created    int64           `json:"created"`    // Unix milliseconds
	LastUpdate int64           `json:"lastUpdate"` // Unix milliseconds
}

// StaleAt reports whether the room is abandoned as of the given time.
func (r *Room) StaleAt(now time.Time) bool {
	return now.UnixMilli()-r.LastUpdate > Staleness.Milliseconds()
}

// HasGuest reports whether the guest slot is occupied.
func (r *Room) HasGuest() bool {
	return r.Guest != ""
}

// Clone returns a deep copy of the room. Handlers receive clones so the
// poller's cached record is never shared mutable state.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	if r.GameState != nil {
		c.GameState = make(json.RawMessage, len(r.GameState))
		copy(c.GameState, r.GameState)
	}
	return &c
}

// Participant identifies one player in a room.
type Participant struct {
	ID   string
	Name string
}

// ShareFunc composes a shareable deep link for a room. The room core
// never constructs chat-app URLs itself; the host layer injects this.
type ShareFunc func(roomID, gameType string) string
