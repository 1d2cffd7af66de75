// Package snake implements classic grid snake: food grows the snake,
// walls and self end the run, speed rises with the score.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

const (
	baseMoveEvery = 6 // ticks between moves at score 0
	minMoveEvery  = 2
	speedUpEvery  = 5 // food per speed step
	hudHeight     = 2
)

// Game implements snake.
type Game struct {
	rng     *rand.Rand
	screenW int
	screenH int

	fieldW  int
	fieldH  int
	offsetX int
	offsetY int

	snake     []core.Point // head at index 0
	direction Direction
	nextDir   Direction
	growing   bool

	food core.Point

	moveEveryTicks int
	moveTicker     int

	score    int
	gameOver bool
	paused   bool
	tooSmall bool
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// New creates a snake game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Length returns the current snake length.
func (g *Game) Length() int { return len(g.snake) }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.moveEveryTicks = baseMoveEvery
	g.moveTicker = 0

	// Field fills the screen under the HUD, with a one-cell border.
	g.fieldW = g.screenW - 2
	g.fieldH = g.screenH - hudHeight - 2
	g.offsetX = 1
	g.offsetY = hudHeight + 1

	if g.fieldW < 12 || g.fieldH < 6 {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	startX := g.fieldW / 4
	startY := g.fieldH / 2
	g.snake = []core.Point{
		{X: startX + 2, Y: startY},
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false

	g.spawnFood()
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var empty []core.Point
	for y := 0; y < g.fieldH; y++ {
		for x := 0; x < g.fieldW; x++ {
			p := core.Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = core.Point{X: -1, Y: -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.move()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) processInput(in core.InputFrame) {
	newDir := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		newDir = DirUp
	case in.Has(core.ActionDown):
		newDir = DirDown
	case in.Has(core.ActionLeft):
		newDir = DirLeft
	case in.Has(core.ActionRight):
		newDir = DirRight
	}

	// No instant reversal into the neck.
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

func (g *Game) move() {
	g.direction = g.nextDir

	head := g.snake[0]
	var newHead core.Point
	switch g.direction {
	case DirUp:
		newHead = core.Point{X: head.X, Y: head.Y - 1}
	case DirDown:
		newHead = core.Point{X: head.X, Y: head.Y + 1}
	case DirLeft:
		newHead = core.Point{X: head.X - 1, Y: head.Y}
	case DirRight:
		newHead = core.Point{X: head.X + 1, Y: head.Y}
	}

	if newHead.X < 0 || newHead.X >= g.fieldW || newHead.Y < 0 || newHead.Y >= g.fieldH {
		g.gameOver = true
		return
	}

	// Tail cell frees up unless the snake grows this move.
	checkLen := len(g.snake)
	if !g.growing {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]core.Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score++
		g.growing = true
		g.spawnFood()
		g.updateSpeed()
	}

	if g.growing {
		g.growing = false
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

func (g *Game) updateSpeed() {
	g.moveEveryTicks = core.Max(minMoveEvery, baseMoveEvery-g.score/speedUpEvery)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawText(1, 0, fmt.Sprintf("Snake — Score: %d  Length: %d", g.score, len(g.snake)))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	dst.DrawBox(core.NewRect(g.offsetX-1, g.offsetY-1, g.fieldW+2, g.fieldH+2))

	if g.food.X >= 0 {
		dst.SetColored(g.offsetX+g.food.X, g.offsetY+g.food.Y, '*', core.ColorBrightRed)
	}

	for i, seg := range g.snake {
		r := 'o'
		if i == 0 {
			r = 'O'
		}
		dst.SetColored(g.offsetX+seg.X, g.offsetY+seg.Y, r, core.ColorBrightGreen)
	}

	switch {
	case g.gameOver:
		dst.DrawTextCentered(dst.Height()/2, "Game Over — press R to restart")
	case g.paused:
		dst.DrawTextCentered(dst.Height()/2, "Paused — press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
