// Package reaction implements the reaction tester: wait through a
// random delay, press as soon as the screen turns green.
package reaction

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

type phase int

const (
	phaseIdle phase = iota
	phaseArming
	phaseGo
	phaseResult
	phaseFoul
)

const (
	minDelayMs = 1500
	maxDelayMs = 4500
)

// Game implements the reaction tester.
type Game struct {
	rng      *rand.Rand
	tickRate int

	phase      phase
	delayTicks int // ticks until the go signal
	goTicks    int // ticks elapsed since the go signal

	lastMs   int
	bestMs   int
	attempts int

	timePending bool // set on a valid attempt, cleared by TakeTime
}

func init() {
	registry.Register("reaction", func() registry.Game {
		return New()
	})
}

// New creates a reaction tester.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "reaction" }

// Title returns the display name.
func (g *Game) Title() string { return "Reaction Test" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TicksPerSecond()
	g.phase = phaseIdle
	g.lastMs = 0
	g.bestMs = 0
	g.attempts = 0
	g.timePending = false
}

func (g *Game) ticksFor(ms int) int {
	return ms * g.tickRate / 1000
}

func (g *Game) msFor(ticks int) int {
	return ticks * 1000 / g.tickRate
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case phaseIdle, phaseResult, phaseFoul:
		if in.Has(core.ActionConfirm) {
			g.arm()
		}
	case phaseArming:
		if in.Has(core.ActionConfirm) {
			// Pressed before the signal.
			g.phase = phaseFoul
			break
		}
		g.delayTicks--
		if g.delayTicks <= 0 {
			g.phase = phaseGo
			g.goTicks = 0
		}
	case phaseGo:
		g.goTicks++
		if in.Has(core.ActionConfirm) {
			g.record()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) arm() {
	delayMs := minDelayMs + g.rng.Intn(maxDelayMs-minDelayMs+1)
	g.delayTicks = g.ticksFor(delayMs)
	g.phase = phaseArming
}

func (g *Game) record() {
	g.lastMs = g.msFor(g.goTicks)
	g.attempts++
	if g.bestMs == 0 || g.lastMs < g.bestMs {
		g.bestMs = g.lastMs
	}
	g.phase = phaseResult
	g.timePending = true
}

// TakeTime returns the most recent valid reaction time in milliseconds
// once, or 0 when no attempt has finished since the last call. Fouls
// are never reported.
func (g *Game) TakeTime() int {
	if !g.timePending {
		return 0
	}
	g.timePending = false
	return g.lastMs
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Reaction Test")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	midY := dst.Height() / 2

	switch g.phase {
	case phaseIdle:
		dst.DrawTextCentered(midY, "Press Enter to start")
	case phaseArming:
		dst.DrawTextCenteredColored(midY, "Wait for it...", core.ColorYellow)
	case phaseGo:
		dst.DrawTextCenteredColored(midY, ">>> PRESS NOW <<<", core.ColorBrightGreen)
	case phaseResult:
		dst.DrawTextCentered(midY, fmt.Sprintf("%d ms", g.lastMs))
		dst.DrawTextCentered(midY+2, "Press Enter to try again")
	case phaseFoul:
		dst.DrawTextCenteredColored(midY, "Too early!", core.ColorBrightRed)
		dst.DrawTextCentered(midY+2, "Press Enter to try again")
	}

	best := "N/A"
	if g.bestMs > 0 {
		best = fmt.Sprintf("%d ms", g.bestMs)
	}
	dst.DrawTextCentered(dst.Height()-2, fmt.Sprintf("Best: %s  Attempts: %d", best, g.attempts))
}

// State returns the current game state. Score is the session best
// converted to points, where faster reactions score higher.
func (g *Game) State() core.GameState {
	score := 0
	if g.bestMs > 0 {
		score = core.Max(0, 1000-g.bestMs)
	}
	return core.GameState{Score: score}
}
