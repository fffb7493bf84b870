package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultPongConfig returns the stock 800x500 table.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Table:   PongTable{Width: 800, Height: 500},
		Paddles: PongPaddles{Height: 100, Width: 15, Speed: 6},
		Ball:    PongBall{Size: 10, Speed: 4, SpeedIncrease: 1.1},
		AI:      PongAI{SpeedFactor: 0.8, TargetOffset: 35},
		Gameplay: PongGameplay{
			WinningScore: 5,
			ServeDelay:   45,
		},
	}
}

// DefaultPalette is the rainbow brick palette, top row first.
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

// DefaultArkanoidConfig returns the stock 800x600 board.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		Canvas:   ArkanoidCanvas{Width: 800, Height: 600},
		Paddle:   ArkanoidPaddle{Width: 120, Height: 15},
		Ball:     ArkanoidBall{Size: 12},
		Gameplay: ArkanoidGameplay{Lives: 3},
		Palette:  DefaultPalette(),
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pong", "pong_versus":
		return defaultPongYAML
	case "arkanoid":
		return defaultArkanoidYAML
	default:
		return nil
	}
}
