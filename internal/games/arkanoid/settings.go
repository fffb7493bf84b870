package arkanoid

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// BrickColor is the colour triple for one brick row.
type BrickColor struct {
	Primary   string
	Secondary string
	Glow      string
}

// Settings is the immutable configuration of an Engine. Spatial values are
// in base canvas units and get multiplied by the scale.
type Settings struct {
	CanvasWidth  float64
	CanvasHeight float64
	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64
	InitialLives int
	Palette      []BrickColor // Empty resolves to DefaultPalette
	Compact      bool         // Smaller particle bursts
}

// Layout constants in base canvas units.
const (
	BrickRows = 6
	BrickCols = 10

	brickWidth   = 75
	brickHeight  = 25
	brickPadding = 5
	gridTop      = 80

	paddleLift   = 30  // Gap between paddle and canvas bottom
	serveLift    = 100 // Extra gap between ball and paddle at serve
	serveSpeed   = 2.5
	paddleSpeed  = 8
	deflection   = 0.1 // vx per unit of distance from paddle centre
	gridWidth    = BrickCols*(brickWidth+brickPadding) - brickPadding
	gridBottom   = gridTop + BrickRows*(brickHeight+brickPadding) - brickPadding
	rowPointStep = 10
)

// DefaultPalette returns the rainbow rows, top row first.
func DefaultPalette() []BrickColor {
	return []BrickColor{
		{Primary: "#ef4444", Secondary: "#dc2626", Glow: "#ef4444"},
		{Primary: "#f97316", Secondary: "#ea580c", Glow: "#f97316"},
		{Primary: "#eab308", Secondary: "#ca8a04", Glow: "#eab308"},
		{Primary: "#22c55e", Secondary: "#16a34a", Glow: "#22c55e"},
		{Primary: "#3b82f6", Secondary: "#2563eb", Glow: "#3b82f6"},
		{Primary: "#a855f7", Secondary: "#9333ea", Glow: "#a855f7"},
	}
}

// DefaultSettings returns the stock 800x600 board.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:  800,
		CanvasHeight: 600,
		PaddleWidth:  120,
		PaddleHeight: 15,
		BallSize:     12,
		InitialLives: 3,
		Palette:      DefaultPalette(),
	}
}

// Resolve copies the palette, fills it when empty and validates the board.
func (s Settings) Resolve() (Settings, error) {
	if len(s.Palette) == 0 {
		s.Palette = DefaultPalette()
	} else {
		s.Palette = append([]BrickColor(nil), s.Palette...)
	}

	checks := []struct {
		name string
		val  float64
	}{
		{"canvas width", s.CanvasWidth},
		{"canvas height", s.CanvasHeight},
		{"paddle width", s.PaddleWidth},
		{"paddle height", s.PaddleHeight},
		{"ball size", s.BallSize},
		{"initial lives", float64(s.InitialLives)},
	}
	for _, c := range checks {
		if !(c.val > 0) {
			return s, fmt.Errorf("arkanoid: %w: %s must be positive, got %v", core.ErrInvalidSettings, c.name, c.val)
		}
	}

	if s.CanvasWidth < gridWidth {
		return s, fmt.Errorf("arkanoid: %w: canvas width %v narrower than the brick grid (%d)",
			core.ErrInvalidSettings, s.CanvasWidth, gridWidth)
	}
	if s.PaddleWidth >= s.CanvasWidth {
		return s, fmt.Errorf("arkanoid: %w: paddle width %v does not fit canvas width %v",
			core.ErrInvalidSettings, s.PaddleWidth, s.CanvasWidth)
	}
	if serveY := s.CanvasHeight - s.PaddleHeight - s.BallSize - serveLift; serveY-s.BallSize <= gridBottom {
		return s, fmt.Errorf("arkanoid: %w: canvas height %v leaves no room to serve below the bricks",
			core.ErrInvalidSettings, s.CanvasHeight)
	}
	for i, c := range s.Palette {
		if c.Primary == "" || c.Secondary == "" || c.Glow == "" {
			return s, fmt.Errorf("arkanoid: %w: palette row %d has an empty colour", core.ErrInvalidSettings, i)
		}
	}
	return s, nil
}

// Key is a logical control the host can press or release.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

// Keys is the pressed state of both controls.
type Keys struct {
	Left, Right bool
}

// Phase is the engine's lifecycle stage.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelComplete
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level complete"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Dimensions are the settings multiplied by the current scale.
type Dimensions struct {
	CanvasWidth  float64
	CanvasHeight float64
	PaddleWidth  float64
	PaddleHeight float64
	PaddleY      float64
	BallSize     float64
}
