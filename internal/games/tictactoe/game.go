// Package tictactoe implements tic-tac-toe against a bot.
package tictactoe

import (
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

// Mark is a board cell owner.
type Mark byte

const (
	Empty  Mark = 0
	Player Mark = 'X'
	Bot    Mark = 'O'
)

// Outcome is the game result from the player's perspective.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

var corners = []int{0, 2, 6, 8}

// Game implements tic-tac-toe vs a bot.
type Game struct {
	rng *rand.Rand

	board   [9]Mark
	cursorX int
	cursorY int

	outcome Outcome
	over    bool

	wins   int
	losses int
	draws  int

	resultPending bool
}

func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}

// New creates a tic-tac-toe game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tictactoe" }

// Title returns the display name.
func (g *Game) Title() string { return "Tic Tac Toe" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.clearBoard()
	g.wins = 0
	g.losses = 0
	g.draws = 0
	g.resultPending = false
}

func (g *Game) clearBoard() {
	g.board = [9]Mark{}
	g.cursorX = 1
	g.cursorY = 1
	g.outcome = OutcomeNone
	g.over = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.over {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.clearBoard()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUp) && g.cursorY > 0 {
		g.cursorY--
	}
	if in.Has(core.ActionDown) && g.cursorY < 2 {
		g.cursorY++
	}
	if in.Has(core.ActionLeft) && g.cursorX > 0 {
		g.cursorX--
	}
	if in.Has(core.ActionRight) && g.cursorX < 2 {
		g.cursorX++
	}
	if in.Has(core.ActionConfirm) {
		g.playerMove(g.cursorY*3 + g.cursorX)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) playerMove(idx int) {
	if g.board[idx] != Empty {
		return
	}

	g.board[idx] = Player
	if g.checkEnd() {
		return
	}

	g.board[g.botMove()] = Bot
	g.checkEnd()
}

// botMove picks the bot's cell: win if possible, block the player,
// take the center, a corner, then anything.
func (g *Game) botMove() int {
	if idx := g.findLineMove(Bot); idx >= 0 {
		return idx
	}
	if idx := g.findLineMove(Player); idx >= 0 {
		return idx
	}
	if g.board[4] == Empty {
		return 4
	}

	var free []int
	for _, c := range corners {
		if g.board[c] == Empty {
			free = append(free, c)
		}
	}
	if len(free) > 0 {
		return free[g.rng.Intn(len(free))]
	}

	for i, m := range g.board {
		if m == Empty {
			free = append(free, i)
		}
	}
	return free[g.rng.Intn(len(free))]
}

// findLineMove returns the empty cell completing a line for the given
// mark, or -1.
func (g *Game) findLineMove(m Mark) int {
	for _, line := range lines {
		count, empty := 0, -1
		for _, idx := range line {
			switch g.board[idx] {
			case m:
				count++
			case Empty:
				empty = idx
			}
		}
		if count == 2 && empty >= 0 {
			return empty
		}
	}
	return -1
}

func winner(board [9]Mark) Mark {
	for _, line := range lines {
		if board[line[0]] != Empty && board[line[0]] == board[line[1]] && board[line[1]] == board[line[2]] {
			return board[line[0]]
		}
	}
	return Empty
}

func (g *Game) checkEnd() bool {
	switch winner(g.board) {
	case Player:
		g.finish(OutcomeWin)
		return true
	case Bot:
		g.finish(OutcomeLoss)
		return true
	}

	for _, m := range g.board {
		if m == Empty {
			return false
		}
	}
	g.finish(OutcomeDraw)
	return true
}

func (g *Game) finish(o Outcome) {
	g.outcome = o
	g.over = true
	g.resultPending = true
	switch o {
	case OutcomeWin:
		g.wins++
	case OutcomeLoss:
		g.losses++
	case OutcomeDraw:
		g.draws++
	}
}

// TakeOutcome returns the most recent game result once, or OutcomeNone
// when no game has finished since the last call.
func (g *Game) TakeOutcome() Outcome {
	if !g.resultPending {
		return OutcomeNone
	}
	g.resultPending = false
	return g.outcome
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Tic Tac Toe")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	cellW, cellH := 4, 2
	originX := (dst.Width() - 3*cellW) / 2
	originY := (dst.Height() - 3*cellH) / 2

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			idx := y*3 + x
			px := originX + x*cellW
			py := originY + y*cellH

			face := '·'
			color := core.ColorGray
			switch g.board[idx] {
			case Player:
				face = 'X'
				color = core.ColorBrightCyan
			case Bot:
				face = 'O'
				color = core.ColorBrightRed
			}

			if x == g.cursorX && y == g.cursorY && !g.over {
				dst.SetColored(px, py, '[', core.ColorBrightYellow)
				dst.SetColored(px+1, py, face, color)
				dst.SetColored(px+2, py, ']', core.ColorBrightYellow)
			} else {
				dst.SetColored(px+1, py, face, color)
			}
		}
	}

	if g.over {
		var msg string
		switch g.outcome {
		case OutcomeWin:
			msg = "You Win! Press Enter for a new game"
		case OutcomeLoss:
			msg = "You Lose! Press Enter for a new game"
		default:
			msg = "Draw! Press Enter for a new game"
		}
		dst.DrawTextCentered(dst.Height()-4, msg)
	}

	hud := "You: X  Bot: O"
	dst.DrawTextCentered(dst.Height()-2, hud)
}

// State returns the current game state. The session score counts wins.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.wins}
}
