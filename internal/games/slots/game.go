// Package slots implements a three-reel slot machine with a payout
// table for pairs, triples, and bonus symbols.
package slots

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

// Symbols on the reels. Seven and Diamond pay a bonus even without a
// matching pair.
var symbols = []rune{'C', 'L', 'O', 'G', 'B', '*', 'D', '7'}

const (
	startCredits = 100
	bet          = 10

	jackpotMultiplier = 10 // three of a kind
	pairMultiplier    = 3  // any two match
	bonusMultiplier   = 2  // contains 7 or D
)

// WinKind classifies one spin's result.
type WinKind string

const (
	WinNone    WinKind = "lose"
	WinJackpot WinKind = "jackpot"
	WinPair    WinKind = "pair"
	WinBonus   WinKind = "bonus"
)

type phase int

const (
	phaseIdle phase = iota
	phaseSpinning
	phaseResult
)

// Game implements the slot machine.
type Game struct {
	rng      *rand.Rand
	tickRate int
	tick     uint64

	phase     phase
	spinTicks int

	reels   [3]rune
	kind    WinKind
	payout  int
	credits int
	broke   bool

	spins   int
	wins    int
	bestWin int

	resultPending bool
}

func init() {
	registry.Register("slots", func() registry.Game {
		return New()
	})
}

// New creates a slots game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "slots" }

// Title returns the display name.
func (g *Game) Title() string { return "Slots" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TicksPerSecond()
	g.tick = 0
	g.phase = phaseIdle
	g.reels = [3]rune{symbols[0], symbols[0], symbols[0]}
	g.kind = WinNone
	g.payout = 0
	g.credits = startCredits
	g.broke = false
	g.spins = 0
	g.wins = 0
	g.bestWin = 0
	g.resultPending = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.broke {
		if in.Has(core.ActionRestart) {
			g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), TickRate: g.tickRate})
		}
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case phaseIdle, phaseResult:
		if in.Has(core.ActionConfirm) && g.credits >= bet {
			g.credits -= bet
			g.phase = phaseSpinning
			g.spinTicks = g.tickRate
		}
	case phaseSpinning:
		g.spinTicks--
		if g.spinTicks <= 0 {
			g.settle()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) settle() {
	for i := range g.reels {
		g.reels[i] = symbols[g.rng.Intn(len(symbols))]
	}

	g.kind = Evaluate(g.reels)
	g.payout = Payout(g.kind)
	g.credits += g.payout

	g.spins++
	if g.kind != WinNone {
		g.wins++
		if g.payout > g.bestWin {
			g.bestWin = g.payout
		}
	}

	g.phase = phaseResult
	g.resultPending = true

	if g.credits < bet {
		g.broke = true
	}
}

// Evaluate classifies a spin: triples beat pairs beat bonus symbols.
func Evaluate(reels [3]rune) WinKind {
	if reels[0] == reels[1] && reels[1] == reels[2] {
		return WinJackpot
	}
	if reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2] {
		return WinPair
	}
	for _, r := range reels {
		if r == '7' || r == 'D' {
			return WinBonus
		}
	}
	return WinNone
}

// Payout returns the credit payout for a result at the fixed bet.
func Payout(kind WinKind) int {
	switch kind {
	case WinJackpot:
		return bet * jackpotMultiplier
	case WinPair:
		return bet * pairMultiplier
	case WinBonus:
		return bet * bonusMultiplier
	default:
		return 0
	}
}

// TakeResult returns the most recent spin result once. The bool is
// false when no spin has settled since the last call.
func (g *Game) TakeResult() (WinKind, int, bool) {
	if !g.resultPending {
		return WinNone, 0, false
	}
	g.resultPending = false
	return g.kind, g.payout, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextCentered(1, "Slots")
	dst.DrawHLine(0, 2, dst.Width(), '─')

	midY := dst.Height() / 2
	x := dst.Width()/2 - 6

	dst.DrawBox(core.NewRect(x-2, midY-1, 15, 3))
	for i, r := range g.reels {
		face := r
		if g.phase == phaseSpinning {
			face = symbols[(int(g.tick)+i)%len(symbols)]
		}
		dst.SetColored(x+i*5, midY, face, core.ColorBrightYellow)
	}

	switch g.phase {
	case phaseIdle:
		dst.DrawTextCentered(midY+3, fmt.Sprintf("Press Enter to spin (bet %d)", bet))
	case phaseResult:
		var msg string
		switch g.kind {
		case WinJackpot:
			msg = fmt.Sprintf("JACKPOT! +%d", g.payout)
		case WinPair:
			msg = fmt.Sprintf("Pair! +%d", g.payout)
		case WinBonus:
			msg = fmt.Sprintf("Bonus! +%d", g.payout)
		default:
			msg = "No luck, spin again"
		}
		dst.DrawTextCentered(midY+3, msg)
	}

	if g.broke {
		dst.DrawTextCentered(midY+5, "Out of credits! Press R to start over")
	}

	dst.DrawTextCentered(dst.Height()-2, fmt.Sprintf("Credits: %d  Spins: %d  Wins: %d  Best: %d", g.credits, g.spins, g.wins, g.bestWin))
}

// State returns the current game state. Score is the credit balance.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.credits, GameOver: g.broke}
}
