// Package leaderboard ranks players per game by their highest score.
package leaderboard

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/numbers21py/miniarcades/internal/storage"
)

// Entry is one ranked leaderboard row.
type Entry = storage.LeaderboardEntry

// Board records scores for the current player and serves ranked views.
type Board struct {
	db    *storage.Store
	self  Identity
	clock clockwork.Clock
}

// New creates a board for the given player.
func New(db *storage.Store, self Identity) *Board {
	return &Board{db: db, self: self, clock: clockwork.NewRealClock()}
}

// NewWithClock creates a board with an injected clock, used by tests.
func NewWithClock(db *storage.Store, self Identity, clock clockwork.Clock) *Board {
	return &Board{db: db, self: self, clock: clock}
}

// Self returns the identity scores are submitted under.
func (b *Board) Self() Identity {
	return b.self
}

// Submit records a finished game. The stored high score only moves up;
// games played always increments.
func (b *Board) Submit(gameID string, score int) error {
	err := b.db.UpsertScore(storage.LeaderboardEntry{
		GameID:     gameID,
		PlayerID:   b.self.ID,
		PlayerName: b.self.Name,
		HighScore:  score,
		LastPlayed: b.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("leaderboard: submit %s: %w", gameID, err)
	}
	return nil
}

// Top returns the highest-scoring entries for the game, best first.
func (b *Board) Top(gameID string, n int) ([]Entry, error) {
	return b.db.TopPlayers(gameID, n)
}

// Rank returns the current player's 1-based position on the game's
// board, or 0 if they have not played it.
func (b *Board) Rank(gameID string) (int, error) {
	return b.db.PlayerRank(gameID, b.self.ID)
}
