// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/numbers21py/miniarcades/internal/core"
)

// Game is the interface every arcade game implements.
// Games contain pure logic with no external dependencies (especially no
// Bubble Tea); the platform handles input mapping, timing, and display.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "dice", "rps").
	// Used for CLI commands, score storage, and room gameType.
	ID() string

	// Title returns a human-readable name for display (e.g., "Dice Roll").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID        string
	Title     string
	TwoPlayer bool // Supports multiplayer rooms
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory   Factory
	title     string
	twoPlayer bool
}

var (
	games = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	register(id, f, false)
}

// RegisterTwoPlayer adds a game that also supports multiplayer rooms.
func RegisterTwoPlayer(id string, f Factory) {
	register(id, f, true)
}

func register(id string, f Factory, twoPlayer bool) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	games[id] = entry{factory: f, title: g.Title(), twoPlayer: twoPlayer}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for id, e := range games {
		result = append(result, GameInfo{
			ID:        id,
			Title:     e.title,
			TwoPlayer: e.twoPlayer,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := games[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}

// SupportsTwoPlayer reports whether the game can be played in a room.
func SupportsTwoPlayer(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := games[id]
	return ok && e.twoPlayer
}
