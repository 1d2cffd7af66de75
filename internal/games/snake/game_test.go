package snake

import (
	"testing"

	"github.com/numbers21py/miniarcades/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 30})
	return g
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(12345)
	g2 := newGame(12345)

	in := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		in.Clear()
		if i == 20 {
			in.Set(core.ActionDown)
		}
		if i == 40 {
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if g1.score != g2.score {
		t.Errorf("Score mismatch: %d vs %d", g1.score, g2.score)
	}
	if g1.snake[0] != g2.snake[0] {
		t.Errorf("Head mismatch: %v vs %v", g1.snake[0], g2.snake[0])
	}
	if g1.food != g2.food {
		t.Errorf("Food mismatch: %v vs %v", g1.food, g2.food)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newGame(42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)

	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	in.Clear()
	in.Set(core.ActionDown)
	g.Step(in)

	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir Down, got %v", g.nextDir)
	}
}

func TestWallCollision(t *testing.T) {
	g := newGame(7)

	g.snake = []core.Point{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}}
	g.direction = DirLeft
	g.nextDir = DirLeft

	g.move()

	if !g.gameOver {
		t.Error("Game should be over after hitting the wall")
	}
}

func TestSelfCollision(t *testing.T) {
	g := newGame(8)

	g.snake = []core.Point{
		{X: 5, Y: 5},
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight

	g.move()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestGrowthAndScore(t *testing.T) {
	g := newGame(9)

	initialLen := len(g.snake)
	head := g.snake[0]
	g.food = core.Point{X: head.X + 1, Y: head.Y}
	g.direction = DirRight
	g.nextDir = DirRight

	g.move()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != 1 {
		t.Errorf("Score should be 1, got %d", g.score)
	}
	if g.Length() != initialLen+1 {
		t.Errorf("Length() should report %d, got %d", initialLen+1, g.Length())
	}
}

func TestSpeedRisesWithScore(t *testing.T) {
	g := newGame(10)

	g.score = speedUpEvery * 2
	g.updateSpeed()

	if g.moveEveryTicks >= baseMoveEvery {
		t.Errorf("Speed should rise with score, moveEveryTicks still %d", g.moveEveryTicks)
	}

	g.score = 1000
	g.updateSpeed()
	if g.moveEveryTicks < minMoveEvery {
		t.Errorf("Speed should clamp at %d, got %d", minMoveEvery, g.moveEveryTicks)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newGame(11)

	for i := 0; i < 100; i++ {
		g.spawnFood()
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at %v", g.food)
		}
		if g.food.X < 0 || g.food.X >= g.fieldW || g.food.Y < 0 || g.food.Y >= g.fieldH {
			t.Errorf("Food out of bounds at %v", g.food)
		}
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 10, ScreenH: 5, TickRate: 30})

	if !g.tooSmall {
		t.Error("Game should detect a too-small window")
	}
}

func TestRender(t *testing.T) {
	g := newGame(12)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if len(content) == 0 {
		t.Error("Rendered screen should not be empty")
	}
}
