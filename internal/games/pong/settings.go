package pong

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Settings is the fully resolved, immutable configuration of an Engine.
// Spatial values are in base canvas units and get multiplied by the scale.
type Settings struct {
	CanvasWidth       float64
	CanvasHeight      float64
	PaddleHeight      float64
	PaddleWidth       float64
	BallSize          float64
	WinningScore      int
	PaddleSpeed       float64
	BallSpeed         float64
	AIPaddleSpeed     float64 // 0 resolves to 80% of PaddleSpeed
	AITargetOffset    float64 // 0 resolves to DefaultAITargetOffset
	BallSpeedIncrease float64 // 0 resolves to DefaultBallSpeedIncrease
}

const (
	DefaultAITargetOffset    = 35
	DefaultBallSpeedIncrease = 1.1
	defaultAISpeedFactor     = 0.8

	// Distance from each paddle to its canvas edge, in base units.
	paddleInset = 30
)

// DefaultSettings returns the stock 800x500 table.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:  800,
		CanvasHeight: 500,
		PaddleHeight: 100,
		PaddleWidth:  15,
		BallSize:     10,
		WinningScore: 5,
		PaddleSpeed:  6,
		BallSpeed:    4,
	}
}

// Resolve fills optional AI fields with their defaults and validates the
// result. Any non-positive dimension, speed or winning score is rejected.
func (s Settings) Resolve() (Settings, error) {
	if s.AIPaddleSpeed == 0 {
		s.AIPaddleSpeed = s.PaddleSpeed * defaultAISpeedFactor
	}
	if s.AITargetOffset == 0 {
		s.AITargetOffset = DefaultAITargetOffset
	}
	if s.BallSpeedIncrease == 0 {
		s.BallSpeedIncrease = DefaultBallSpeedIncrease
	}

	checks := []struct {
		name string
		val  float64
	}{
		{"canvas width", s.CanvasWidth},
		{"canvas height", s.CanvasHeight},
		{"paddle height", s.PaddleHeight},
		{"paddle width", s.PaddleWidth},
		{"ball size", s.BallSize},
		{"winning score", float64(s.WinningScore)},
		{"paddle speed", s.PaddleSpeed},
		{"ball speed", s.BallSpeed},
		{"AI paddle speed", s.AIPaddleSpeed},
		{"AI target offset", s.AITargetOffset},
		{"ball speed increase", s.BallSpeedIncrease},
	}
	for _, c := range checks {
		if !(c.val > 0) {
			return s, fmt.Errorf("pong: %w: %s must be positive, got %v", core.ErrInvalidSettings, c.name, c.val)
		}
	}

	if s.PaddleHeight >= s.CanvasHeight {
		return s, fmt.Errorf("pong: %w: paddle height %v does not fit canvas height %v",
			core.ErrInvalidSettings, s.PaddleHeight, s.CanvasHeight)
	}
	if 2*(paddleInset+s.PaddleWidth) >= s.CanvasWidth {
		return s, fmt.Errorf("pong: %w: canvas width %v too narrow for paddles",
			core.ErrInvalidSettings, s.CanvasWidth)
	}
	return s, nil
}

// Mode selects who drives the right paddle.
type Mode int

const (
	SinglePlayer Mode = iota // right paddle follows the heuristic opponent
	TwoPlayer                // right paddle follows the Up/Down keys
)

// String returns the mode name used in reports and stored results.
func (m Mode) String() string {
	if m == TwoPlayer {
		return "two-player"
	}
	return "one-player"
}

// Key is a logical control the host can press or release.
type Key int

const (
	KeyW Key = iota
	KeyS
	KeyUp
	KeyDown
)

// Keys is the pressed state of every control.
type Keys struct {
	W, S, Up, Down bool
}

// Side names a paddle, and by extension the player who owns it.
type Side int

const (
	SideNone     Side = iota
	SidePlayer        // left paddle
	SideOpponent      // right paddle
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// Dimensions are the settings multiplied by the current scale.
type Dimensions struct {
	CanvasWidth  float64
	CanvasHeight float64
	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64
	Paddle1X     float64
	Paddle2X     float64
}
