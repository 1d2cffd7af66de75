package core

// DefaultTickRate is the simulation rate the catalog is tuned for.
// The reaction timer and the snake/slots speed curves assume it.
const DefaultTickRate = 30

// RuntimeConfig is what the platform hands a game on Reset: the
// playfield dimensions, the simulation rate, and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform seeds from the clock
}

// TicksPerSecond returns the configured tick rate, falling back to
// DefaultTickRate when unset. Games use it so a zero config still
// produces sane timing.
func (c RuntimeConfig) TicksPerSecond() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// GameState is what a game reports back to the platform after a step.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
