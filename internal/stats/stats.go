// Package stats tracks per-game play statistics. Each game keeps its
// own counter shape, persisted as a JSON document per game id in the
// local database.
package stats

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/numbers21py/miniarcades/internal/storage"
)

// Outcome classifies a finished round from the player's perspective.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Tie  Outcome = "tie"
	Draw Outcome = "draw"
)

// DuelStats covers head-to-head games with streak tracking (dice, rps).
type DuelStats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Total      int `json:"total"`
	WinStreak  int `json:"winStreak"`
	BestStreak int `json:"bestStreak"`
}

// ReactionStats covers the reaction tester. BestTime is in
// milliseconds, 0 until the first valid attempt.
type ReactionStats struct {
	BestTime    int     `json:"bestTime"`
	Attempts    int     `json:"attempts"`
	Total       int     `json:"total"`
	AverageTime float64 `json:"averageTime"`
}

// MemoryStats covers the pairs game. BestScore is the fewest moves to
// clear the board, 0 until the first win.
type MemoryStats struct {
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Total     int `json:"total"`
	BestScore int `json:"bestScore"`
}

// SnakeStats covers snake.
type SnakeStats struct {
	HighScore  int `json:"highScore"`
	Total      int `json:"total"`
	BestLength int `json:"bestLength"`
}

// TicTacToeStats covers tic-tac-toe.
type TicTacToeStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Total  int `json:"total"`
	Draws  int `json:"draws"`
}

// SlotsStats covers slots. BestWin is the largest single payout.
type SlotsStats struct {
	Total   int `json:"total"`
	Wins    int `json:"wins"`
	BestWin int `json:"bestWin"`
}

// ColorMatchStats covers the color match game.
type ColorMatchStats struct {
	HighScore int `json:"highScore"`
	Total     int `json:"total"`
}

// Summary aggregates the headline numbers across all games.
type Summary struct {
	TotalGames   int
	TotalWins    int
	BestReaction int
}

// Tracker loads, updates and persists per-game statistics.
type Tracker struct {
	mu sync.Mutex
	db *storage.Store
}

// NewTracker creates a tracker over the given database.
func NewTracker(db *storage.Store) *Tracker {
	return &Tracker{db: db}
}

func (t *Tracker) load(gameID string, out any) error {
	doc, err := t.db.StatsDoc(gameID)
	if err != nil {
		return fmt.Errorf("stats: load %s: %w", gameID, err)
	}
	if doc == nil {
		return nil // zero value stands for the fresh document
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("stats: decode %s: %w", gameID, err)
	}
	return nil
}

func (t *Tracker) save(gameID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("stats: encode %s: %w", gameID, err)
	}
	if err := t.db.PutStatsDoc(gameID, data); err != nil {
		return fmt.Errorf("stats: save %s: %w", gameID, err)
	}
	return nil
}

// recordDuel applies the shared dice/rps update: wins extend the
// streak, losses and ties break it.
func (t *Tracker) recordDuel(gameID string, outcome Outcome) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s DuelStats
	if err := t.load(gameID, &s); err != nil {
		return err
	}

	s.Total++
	switch outcome {
	case Win:
		s.Wins++
		s.WinStreak++
		if s.WinStreak > s.BestStreak {
			s.BestStreak = s.WinStreak
		}
	case Loss:
		s.Losses++
		s.WinStreak = 0
	case Tie:
		s.WinStreak = 0
	}

	return t.save(gameID, s)
}

// RecordDice records a finished dice round.
func (t *Tracker) RecordDice(outcome Outcome) error {
	return t.recordDuel("dice", outcome)
}

// RecordRPS records a finished rock-paper-scissors round.
func (t *Tracker) RecordRPS(outcome Outcome) error {
	return t.recordDuel("rps", outcome)
}

// RecordReaction records a valid reaction attempt in milliseconds.
// Fouls (pressing early) are not recorded.
func (t *Tracker) RecordReaction(timeMs int) error {
	if timeMs <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var s ReactionStats
	if err := t.load("reaction", &s); err != nil {
		return err
	}

	s.Total++
	s.Attempts++
	if s.BestTime == 0 || timeMs < s.BestTime {
		s.BestTime = timeMs
	}
	// Running average over all attempts.
	s.AverageTime = (s.AverageTime*float64(s.Attempts-1) + float64(timeMs)) / float64(s.Attempts)

	return t.save("reaction", s)
}

// RecordMemory records a finished memory game. moves is only consulted
// on a win, where fewer is better.
func (t *Tracker) RecordMemory(outcome Outcome, moves int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s MemoryStats
	if err := t.load("memory", &s); err != nil {
		return err
	}

	s.Total++
	switch outcome {
	case Win:
		s.Wins++
		if s.BestScore == 0 || moves < s.BestScore {
			s.BestScore = moves
		}
	case Loss:
		s.Losses++
	}

	return t.save("memory", s)
}

// RecordSnake records a finished snake run.
func (t *Tracker) RecordSnake(score, length int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s SnakeStats
	if err := t.load("snake", &s); err != nil {
		return err
	}

	s.Total++
	if score > s.HighScore {
		s.HighScore = score
	}
	if length > s.BestLength {
		s.BestLength = length
	}

	return t.save("snake", s)
}

// RecordTicTacToe records a finished tic-tac-toe game.
func (t *Tracker) RecordTicTacToe(outcome Outcome) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s TicTacToeStats
	if err := t.load("tictactoe", &s); err != nil {
		return err
	}

	s.Total++
	switch outcome {
	case Win:
		s.Wins++
	case Loss:
		s.Losses++
	case Draw:
		s.Draws++
	}

	return t.save("tictactoe", s)
}

// RecordSlots records a spin. payout is only consulted on a win.
func (t *Tracker) RecordSlots(won bool, payout int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s SlotsStats
	if err := t.load("slots", &s); err != nil {
		return err
	}

	s.Total++
	if won {
		s.Wins++
		if payout > s.BestWin {
			s.BestWin = payout
		}
	}

	return t.save("slots", s)
}

// RecordColorMatch records a finished color match run.
func (t *Tracker) RecordColorMatch(score int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s ColorMatchStats
	if err := t.load("colormatch", &s); err != nil {
		return err
	}

	s.Total++
	if score > s.HighScore {
		s.HighScore = score
	}

	return t.save("colormatch", s)
}

// Dice returns the current dice statistics.
func (t *Tracker) Dice() (DuelStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s DuelStats
	err := t.load("dice", &s)
	return s, err
}

// RPS returns the current rock-paper-scissors statistics.
func (t *Tracker) RPS() (DuelStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s DuelStats
	err := t.load("rps", &s)
	return s, err
}

// Reaction returns the current reaction statistics.
func (t *Tracker) Reaction() (ReactionStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s ReactionStats
	err := t.load("reaction", &s)
	return s, err
}

// Memory returns the current memory statistics.
func (t *Tracker) Memory() (MemoryStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s MemoryStats
	err := t.load("memory", &s)
	return s, err
}

// Snake returns the current snake statistics.
func (t *Tracker) Snake() (SnakeStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s SnakeStats
	err := t.load("snake", &s)
	return s, err
}

// TicTacToe returns the current tic-tac-toe statistics.
func (t *Tracker) TicTacToe() (TicTacToeStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s TicTacToeStats
	err := t.load("tictactoe", &s)
	return s, err
}

// Slots returns the current slots statistics.
func (t *Tracker) Slots() (SlotsStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s SlotsStats
	err := t.load("slots", &s)
	return s, err
}

// ColorMatch returns the current color match statistics.
func (t *Tracker) ColorMatch() (ColorMatchStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s ColorMatchStats
	err := t.load("colormatch", &s)
	return s, err
}

// Summarize computes the headline numbers shown on the stats screen.
func (t *Tracker) Summarize() (Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sum Summary

	var dice, rps DuelStats
	var reaction ReactionStats
	var memory MemoryStats
	var snake SnakeStats
	var ttt TicTacToeStats
	var slots SlotsStats
	var cm ColorMatchStats

	loads := []struct {
		id  string
		out any
	}{
		{"dice", &dice},
		{"rps", &rps},
		{"reaction", &reaction},
		{"memory", &memory},
		{"snake", &snake},
		{"tictactoe", &ttt},
		{"slots", &slots},
		{"colormatch", &cm},
	}
	for _, l := range loads {
		if err := t.load(l.id, l.out); err != nil {
			return Summary{}, err
		}
	}

	sum.TotalGames = dice.Total + rps.Total + reaction.Total + memory.Total +
		snake.Total + ttt.Total + slots.Total + cm.Total
	sum.TotalWins = dice.Wins + rps.Wins + memory.Wins + ttt.Wins
	sum.BestReaction = reaction.BestTime

	return sum, nil
}

// Reset clears all statistics.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.db.ResetStats(); err != nil {
		return fmt.Errorf("stats: reset: %w", err)
	}
	return nil
}
