// Package colormatch implements a Stroop round: a color word drawn in
// some ink color, decide whether word and ink match before the window
// closes. One mistake ends the run.
package colormatch

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

type colorDef struct {
	name string
	ink  core.Color
}

var palette = []colorDef{
	{"RED", core.ColorBrightRed},
	{"BLUE", core.ColorBrightBlue},
	{"GREEN", core.ColorBrightGreen},
	{"YELLOW", core.ColorBrightYellow},
	{"PURPLE", core.ColorBrightMagenta},
	{"ORANGE", core.ColorOrange},
}

const (
	startWindowMs  = 3000
	minWindowMs    = 1000
	shrinkPerRound = 100 // window shrinks this many ms per correct answer

	pointsPerCorrect = 10
)

type phase int

const (
	phaseIdle phase = iota
	phasePlaying
	phaseOver
)

// Game implements the color match run.
type Game struct {
	rng      *rand.Rand
	tickRate int

	phase phase

	word      int // index into palette for the word
	ink       int // index into palette for the ink
	windowMs  int
	leftTicks int

	score   int
	rounds  int
	lastErr string // why the run ended

	scorePending bool
}

func init() {
	registry.Register("colormatch", func() registry.Game {
		return New()
	})
}

// New creates a color match game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "colormatch" }

// Title returns the display name.
func (g *Game) Title() string { return "Color Match" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TicksPerSecond()
	g.phase = phaseIdle
	g.score = 0
	g.rounds = 0
	g.lastErr = ""
	g.scorePending = false
}

func (g *Game) ticksFor(ms int) int {
	return ms * g.tickRate / 1000
}

// isMatch reports whether the current word names its own ink color.
func (g *Game) isMatch() bool {
	return g.word == g.ink
}

func (g *Game) nextRound() {
	g.word = g.rng.Intn(len(palette))
	// Half the rounds match on purpose, otherwise the base rate of
	// matches would be one in six.
	if g.rng.Intn(2) == 0 {
		g.ink = g.word
	} else {
		g.ink = g.rng.Intn(len(palette))
	}

	g.windowMs = core.Max(minWindowMs, startWindowMs-g.rounds*shrinkPerRound)
	g.leftTicks = g.ticksFor(g.windowMs)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case phaseIdle:
		if in.Has(core.ActionConfirm) {
			g.phase = phasePlaying
			g.nextRound()
		}
	case phasePlaying:
		answered := in.Has(core.ActionLeft) || in.Has(core.ActionRight)
		if answered {
			saidMatch := in.Has(core.ActionRight)
			if saidMatch == g.isMatch() {
				g.score += pointsPerCorrect
				g.rounds++
				g.nextRound()
			} else {
				g.end("Wrong answer")
			}
			break
		}

		g.leftTicks--
		if g.leftTicks <= 0 {
			g.end("Out of time")
		}
	case phaseOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), TickRate: g.tickRate})
			g.phase = phasePlaying
			g.nextRound()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) end(reason string) {
	g.phase = phaseOver
	g.lastErr = reason
	g.scorePending = true
}

// TakeScore returns the final score once per finished run. The bool is
// false when no run has ended since the last call.
func (g *Game) TakeScore() (int, bool) {
	if !g.scorePending {
		return 0, false
	}
	g.scorePending = false
	return g.score, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Color Match")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	midY := dst.Height() / 2

	switch g.phase {
	case phaseIdle:
		dst.DrawTextCentered(midY-1, "Does the WORD name its own COLOR?")
		dst.DrawTextCentered(midY+1, "← no    → yes")
		dst.DrawTextCentered(midY+3, "Press Enter to start")
	case phasePlaying:
		w := palette[g.word]
		dst.DrawTextCenteredColored(midY-1, w.name, palette[g.ink].ink)
		dst.DrawTextCentered(midY+1, "← no    → yes")

		// Time bar drains with the window.
		barW := dst.Width() / 2
		filled := barW * g.leftTicks / core.Max(1, g.ticksFor(g.windowMs))
		x := (dst.Width() - barW) / 2
		for i := 0; i < barW; i++ {
			r := '░'
			if i < filled {
				r = '█'
			}
			dst.Set(x+i, midY+3, r)
		}
	case phaseOver:
		dst.DrawTextCentered(midY-1, g.lastErr)
		dst.DrawTextCentered(midY, fmt.Sprintf("Final score: %d", g.score))
		dst.DrawTextCentered(midY+2, "Press Enter to play again")
	}

	dst.DrawTextCentered(dst.Height()-2, fmt.Sprintf("Score: %d  Rounds: %d", g.score, g.rounds))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.phase == phaseOver}
}
