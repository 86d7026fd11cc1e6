package core

import "github.com/vovakirdan/tui-2048/internal/engine"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int     // Screen width in characters
	ScreenH    int     // Screen height in characters
	TickRate   int     // Simulation ticks per second (default 60)
	Seed       int64   // RNG seed for deterministic gameplay
	Spawn4Prob float64 // Chance a spawned tile is a 4; 0 never spawns a 4
	BoardSize  int     // Board size a picker highlights first
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0, // 0 means use current time in platform layer
		Spawn4Prob: engine.DefaultSpawn4Prob,
		BoardSize:  engine.DefaultSize,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // Whether a turn was accepted this tick
}
