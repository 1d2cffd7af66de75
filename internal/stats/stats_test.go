package stats

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numbers21py/miniarcades/internal/storage"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTracker(db)
}

func TestDuelStreakTracking(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.RecordDice(Loss))
	require.NoError(t, tr.RecordDice(Win))

	s, err := tr.Dice()
	require.NoError(t, err)
	assert.Equal(t, 4, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.WinStreak)
	assert.Equal(t, 3, s.BestStreak)
}

func TestTieBreaksStreakWithoutCountingLoss(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.RecordDice(Tie))

	s, err := tr.Dice()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 0, s.WinStreak)
	assert.Equal(t, 1, s.BestStreak)
}

func TestReactionBestAndAverage(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordReaction(300))
	require.NoError(t, tr.RecordReaction(200))
	require.NoError(t, tr.RecordReaction(400))

	s, err := tr.Reaction()
	require.NoError(t, err)
	assert.Equal(t, 200, s.BestTime)
	assert.Equal(t, 3, s.Attempts)
	assert.InDelta(t, 300.0, s.AverageTime, 0.001)
}

func TestReactionIgnoresFouls(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordReaction(0))
	require.NoError(t, tr.RecordReaction(-5))

	s, err := tr.Reaction()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Attempts)
	assert.Equal(t, 0, s.Total)
}

func TestMemoryFewerMovesIsBetter(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordMemory(Win, 24))
	require.NoError(t, tr.RecordMemory(Win, 18))
	require.NoError(t, tr.RecordMemory(Win, 30))
	require.NoError(t, tr.RecordMemory(Loss, 0))

	s, err := tr.Memory()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 18, s.BestScore)
}

func TestSnakeHighScoreAndLength(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordSnake(50, 8))
	require.NoError(t, tr.RecordSnake(30, 12))

	s, err := tr.Snake()
	require.NoError(t, err)
	assert.Equal(t, 50, s.HighScore)
	assert.Equal(t, 12, s.BestLength)
	assert.Equal(t, 2, s.Total)
}

func TestTicTacToeDraws(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordTicTacToe(Win))
	require.NoError(t, tr.RecordTicTacToe(Draw))
	require.NoError(t, tr.RecordTicTacToe(Draw))
	require.NoError(t, tr.RecordTicTacToe(Loss))

	s, err := tr.TicTacToe()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 2, s.Draws)
	assert.Equal(t, 4, s.Total)
}

func TestSlotsBestWin(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordSlots(true, 10))
	require.NoError(t, tr.RecordSlots(false, 0))
	require.NoError(t, tr.RecordSlots(true, 25))

	s, err := tr.Slots()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 25, s.BestWin)
}

func TestColorMatchHighScore(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordColorMatch(12))
	require.NoError(t, tr.RecordColorMatch(7))

	s, err := tr.ColorMatch()
	require.NoError(t, err)
	assert.Equal(t, 12, s.HighScore)
	assert.Equal(t, 2, s.Total)
}

func TestSummarize(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.RecordRPS(Loss))
	require.NoError(t, tr.RecordReaction(250))
	require.NoError(t, tr.RecordSnake(10, 5))

	sum, err := tr.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 4, sum.TotalGames)
	assert.Equal(t, 1, sum.TotalWins)
	assert.Equal(t, 250, sum.BestReaction)
}

func TestReset(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordDice(Win))
	require.NoError(t, tr.Reset())

	s, err := tr.Dice()
	require.NoError(t, err)
	assert.Equal(t, DuelStats{}, s)
}
