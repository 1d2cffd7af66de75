// Package rps implements rock-paper-scissors against a bot.
package rps

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

// Choice is one of the three throws.
type Choice string

const (
	Rock     Choice = "rock"
	Paper    Choice = "paper"
	Scissors Choice = "scissors"
)

// Choices lists the throws in selection order.
var Choices = []Choice{Rock, Paper, Scissors}

// beats maps each choice to the choice it defeats.
var beats = map[Choice]Choice{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Outcome is the round result from the player's perspective.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeTie  Outcome = "tie"
)

// Resolve scores one round from the first thrower's perspective.
func Resolve(own, other Choice) Outcome {
	switch {
	case own == other:
		return OutcomeTie
	case beats[own] == other:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

type phase int

const (
	phasePick phase = iota
	phaseResult
)

// Game implements solo rock-paper-scissors.
type Game struct {
	rng  *rand.Rand
	tick uint64

	phase  phase
	cursor int

	playerChoice Choice
	botChoice    Choice
	outcome      Outcome

	wins       int
	losses     int
	ties       int
	winStreak  int
	bestStreak int

	resultPending bool
}

func init() {
	registry.RegisterTwoPlayer("rps", func() registry.Game {
		return New()
	})
}

// New creates a rock-paper-scissors game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "rps" }

// Title returns the display name.
func (g *Game) Title() string { return "Rock Paper Scissors" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.phase = phasePick
	g.cursor = 0
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
	case phasePick:
		if in.Has(core.ActionLeft) && g.cursor > 0 {
			g.cursor--
		}
		if in.Has(core.ActionRight) && g.cursor < len(Choices)-1 {
			g.cursor++
		}
		if in.Has(core.ActionConfirm) {
			g.play(Choices[g.cursor])
		}
	case phaseResult:
		if in.Has(core.ActionConfirm) {
			g.phase = phasePick
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) play(choice Choice) {
	g.playerChoice = choice
	g.botChoice = Choices[g.rng.Intn(len(Choices))]
	g.outcome = Resolve(g.playerChoice, g.botChoice)

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

// TakeOutcome returns the most recent round result once, or OutcomeNone
// when no round has resolved since the last call.
func (g *Game) TakeOutcome() Outcome {
	if !g.resultPending {
		return OutcomeNone
	}
	g.resultPending = false
	return g.outcome
}

func choiceLabel(c Choice) string {
	switch c {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	default:
		return "Scissors"
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Rock Paper Scissors")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	midY := dst.Height() / 2

	// Choice row with cursor brackets.
	rowW := 0
	for _, c := range Choices {
		rowW += len(choiceLabel(c)) + 6
	}
	x := (dst.Width() - rowW) / 2
	for i, c := range Choices {
		label := choiceLabel(c)
		if i == g.cursor {
			dst.DrawTextColored(x, midY-2, "[ "+label+" ]", core.ColorBrightCyan)
		} else {
			dst.DrawText(x, midY-2, "  "+label+"  ")
		}
		x += len(label) + 6
	}

	if g.phase == phaseResult {
		var msg string
		switch g.outcome {
		case OutcomeWin:
			msg = "You Win!"
		case OutcomeLoss:
			msg = "You Lose!"
		default:
			msg = "It's a Tie!"
		}
		dst.DrawTextCentered(midY+1, msg)
		dst.DrawTextCentered(midY+2, fmt.Sprintf("You: %s  Bot: %s", choiceLabel(g.playerChoice), choiceLabel(g.botChoice)))
		dst.DrawTextCentered(midY+4, "Press Enter to play again")
	} else {
		dst.DrawTextCentered(midY+1, "Pick with ←/→, throw with Enter")
	}

	hud := fmt.Sprintf("Wins: %d  Losses: %d  Streak: %d  Best: %d", g.wins, g.losses, g.winStreak, g.bestStreak)
	dst.DrawTextCentered(dst.Height()-2, hud)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.wins}
}
