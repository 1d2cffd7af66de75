// Package memory implements the pairs game: a 4x4 grid of hidden
// symbols, flip two at a time, matches stay open.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

const (
	gridW = 4
	gridH = 4
	pairs = 8
)

var symbols = []rune{'♠', '♥', '♦', '♣', '★', '●', '▲', '■'}

// Game implements the pairs game.
type Game struct {
	rng      *rand.Rand
	tickRate int

	cells   []rune // symbol per cell
	open    []bool // currently face up
	matched []bool

	cursorX int
	cursorY int

	first  int // index of the first flipped card, -1 when none
	second int // index of the second flipped card, -1 when none

	hideTicks int // ticks until a mismatch flips back

	moves   int
	matches int
	won     bool
}

func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}

// New creates a memory game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "memory" }

// Title returns the display name.
func (g *Game) Title() string { return "Memory Match" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TicksPerSecond()

	g.cells = make([]rune, gridW*gridH)
	for i := 0; i < pairs; i++ {
		g.cells[2*i] = symbols[i]
		g.cells[2*i+1] = symbols[i]
	}
	g.rng.Shuffle(len(g.cells), func(i, j int) {
		g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
	})

	g.open = make([]bool, len(g.cells))
	g.matched = make([]bool, len(g.cells))
	g.cursorX = 0
	g.cursorY = 0
	g.first = -1
	g.second = -1
	g.hideTicks = 0
	g.moves = 0
	g.matches = 0
	g.won = false
}

// Moves returns the number of completed flips.
func (g *Game) Moves() int { return g.moves }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.won {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), TickRate: g.tickRate})
		return core.StepResult{State: g.State()}
	}
	if g.won {
		return core.StepResult{State: g.State()}
	}

	// A mismatch stays visible briefly before flipping back.
	if g.hideTicks > 0 {
		g.hideTicks--
		if g.hideTicks == 0 {
			g.open[g.first] = false
			g.open[g.second] = false
			g.first = -1
			g.second = -1
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUp) && g.cursorY > 0 {
		g.cursorY--
	}
	if in.Has(core.ActionDown) && g.cursorY < gridH-1 {
		g.cursorY++
	}
	if in.Has(core.ActionLeft) && g.cursorX > 0 {
		g.cursorX--
	}
	if in.Has(core.ActionRight) && g.cursorX < gridW-1 {
		g.cursorX++
	}
	if in.Has(core.ActionConfirm) {
		g.flip(g.cursorY*gridW + g.cursorX)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) flip(idx int) {
	if g.open[idx] || g.matched[idx] {
		return
	}

	g.open[idx] = true

	if g.first < 0 {
		g.first = idx
		return
	}

	g.second = idx
	g.moves++

	if g.cells[g.first] == g.cells[g.second] {
		g.matched[g.first] = true
		g.matched[g.second] = true
		g.matches++
		g.first = -1
		g.second = -1
		if g.matches == pairs {
			g.won = true
		}
		return
	}

	// Flip back after about a second.
	g.hideTicks = g.tickRate
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Memory Match")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	cellW, cellH := 4, 2
	originX := (dst.Width() - gridW*cellW) / 2
	originY := (dst.Height() - gridH*cellH) / 2

	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			idx := y*gridW + x
			px := originX + x*cellW
			py := originY + y*cellH

			face := '?'
			color := core.ColorGray
			switch {
			case g.matched[idx]:
				face = g.cells[idx]
				color = core.ColorBrightGreen
			case g.open[idx]:
				face = g.cells[idx]
				color = core.ColorBrightYellow
			}

			if x == g.cursorX && y == g.cursorY {
				dst.SetColored(px, py, '[', core.ColorBrightCyan)
				dst.SetColored(px+1, py, face, color)
				dst.SetColored(px+2, py, ']', core.ColorBrightCyan)
			} else {
				dst.SetColored(px+1, py, face, color)
			}
		}
	}

	if g.won {
		dst.DrawTextCentered(dst.Height()-4, fmt.Sprintf("Cleared in %d moves! Press R to play again", g.moves))
	}
	dst.DrawTextCentered(dst.Height()-2, fmt.Sprintf("Matches: %d/%d  Moves: %d", g.matches, pairs, g.moves))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.matches * 10, GameOver: g.won}
}
