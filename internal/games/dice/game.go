// Package dice implements the dice duel: both sides roll one d6, the
// higher roll takes the round.
package dice

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

// Outcome is the round result from the player's perspective.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeTie  Outcome = "tie"
)

type phase int

const (
	phaseIdle phase = iota
	phaseRolling
	phaseResult
)

var diceFaces = []rune{'⚀', '⚁', '⚂', '⚃', '⚄', '⚅'}

// Game implements the solo dice duel against a bot.
type Game struct {
	rng      *rand.Rand
	tickRate int
	tick     uint64

	phase     phase
	rollTicks int // ticks remaining in the roll animation

	playerRoll int
	botRoll    int
	outcome    Outcome

	wins       int
	losses     int
	ties       int
	winStreak  int
	bestStreak int

	resultPending bool // set when a round just resolved, cleared by TakeOutcome
}

func init() {
	registry.RegisterTwoPlayer("dice", func() registry.Game {
		return New()
	})
}

// New creates a dice game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "dice" }

// Title returns the display name.
func (g *Game) Title() string { return "Dice Roll" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TicksPerSecond()
	g.tick = 0
	g.phase = phaseIdle
	g.playerRoll = 0
	g.botRoll = 0
	g.outcome = OutcomeNone
	g.wins = 0
	g.losses = 0
	g.ties = 0
	g.winStreak = 0
	g.bestStreak = 0
	g.resultPending = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	switch g.phase {
	case phaseIdle, phaseResult:
		if in.Has(core.ActionConfirm) {
			g.phase = phaseRolling
			g.rollTicks = g.tickRate / 2
		}
	case phaseRolling:
		g.rollTicks--
		if g.rollTicks <= 0 {
			g.resolve()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) resolve() {
	g.playerRoll = g.rng.Intn(6) + 1
	g.botRoll = g.rng.Intn(6) + 1
	g.outcome = Resolve(g.playerRoll, g.botRoll)

	switch g.outcome {
	case OutcomeWin:
		g.wins++
		g.winStreak++
		if g.winStreak > g.bestStreak {
			g.bestStreak = g.winStreak
		}
	case OutcomeLoss:
		g.losses++
		g.winStreak = 0
	case OutcomeTie:
		g.ties++
		g.winStreak = 0
	}

	g.phase = phaseResult
	g.resultPending = true
}

// Resolve scores one round from the first roller's perspective.
func Resolve(own, other int) Outcome {
	switch {
	case own > other:
		return OutcomeWin
	case own < other:
		return OutcomeLoss
	default:
		return OutcomeTie
	}
}

// TakeOutcome returns the most recent round result once, or OutcomeNone
// when no round has resolved since the last call. The platform uses it
// to record statistics exactly once per round.
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

	dst.DrawTextCentered(1, "Dice Roll")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	midY := dst.Height() / 2
	leftX := dst.Width()/2 - 8
	rightX := dst.Width()/2 + 7

	switch g.phase {
	case phaseIdle:
		dst.DrawTextCentered(midY, "Press Enter to roll")
	case phaseRolling:
		// Cycle faces while the roll animates.
		face := diceFaces[int(g.tick)%len(diceFaces)]
		dst.SetColored(leftX, midY, face, core.ColorBrightYellow)
		dst.DrawTextCentered(midY, "VS")
		dst.SetColored(rightX, midY, face, core.ColorBrightYellow)
	case phaseResult:
		dst.SetColored(leftX, midY, diceFaces[g.playerRoll-1], core.ColorBrightGreen)
		dst.DrawTextCentered(midY, "VS")
		dst.SetColored(rightX, midY, diceFaces[g.botRoll-1], core.ColorBrightRed)

		var msg string
		switch g.outcome {
		case OutcomeWin:
			msg = "You Win!"
		case OutcomeLoss:
			msg = "You Lose!"
		default:
			msg = "It's a Tie!"
		}
		dst.DrawTextCentered(midY+2, msg)
		dst.DrawTextCentered(midY+3, fmt.Sprintf("You: %d  Bot: %d", g.playerRoll, g.botRoll))
		dst.DrawTextCentered(midY+5, "Press Enter to roll again")
	}

	hud := fmt.Sprintf("Wins: %d  Losses: %d  Streak: %d  Best: %d", g.wins, g.losses, g.winStreak, g.bestStreak)
	dst.DrawTextCentered(dst.Height()-2, hud)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.wins}
}
