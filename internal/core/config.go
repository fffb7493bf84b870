package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Name results are recorded under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "player",
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Outcome is set only on the tick a game finishes.
type StepResult struct {
	State   GameState
	Outcome *Outcome
}

// Outcome summarises a finished game for persistence and reporting.
type Outcome struct {
	GameID          string
	Mode            string // "one-player" / "two-player" for Pong, "campaign" for Arkanoid
	Score           int
	OpponentScore   int
	Won             bool
	Shared          bool // Both sides played on one keyboard; kept out of player stats
	Level           int
	Lives           int
	BricksDestroyed int
	LongestRally    int // Most consecutive returns by player one
	XP              int
	Ticks           int
	TickRate        int
}

// Duration converts the tick count to wall time at the configured tick rate.
func (o Outcome) Duration() time.Duration {
	if o.TickRate <= 0 {
		return 0
	}
	return time.Duration(o.Ticks) * time.Second / time.Duration(o.TickRate)
}

// Perfect reports a win where the opponent never scored.
func (o Outcome) Perfect() bool {
	return o.Won && o.OpponentScore == 0
}
