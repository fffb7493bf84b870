// Package config provides YAML-based game tuning and difficulty presets
// for the arcade games.
package config

// PongConfig contains all tuning for Pong.
type PongConfig struct {
	Table    PongTable    `yaml:"table"`
	Paddles  PongPaddles  `yaml:"paddles"`
	Ball     PongBall     `yaml:"ball"`
	AI       PongAI       `yaml:"ai"`
	Gameplay PongGameplay `yaml:"gameplay"`
}

// PongTable is the logical canvas size in base units.
type PongTable struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PongPaddles defines paddle geometry and keyboard speed.
type PongPaddles struct {
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Speed  float64 `yaml:"speed"`
}

// PongBall defines ball size, serve speed and per-return acceleration.
type PongBall struct {
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	SpeedIncrease float64 `yaml:"speed_increase"`
}

// PongAI tunes the single-player opponent.
type PongAI struct {
	SpeedFactor  float64 `yaml:"speed_factor"`  // Fraction of paddle speed
	TargetOffset float64 `yaml:"target_offset"` // Dead zone around the paddle centre
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinningScore int `yaml:"winning_score"`
	ServeDelay   int `yaml:"serve_delay"` // Ticks the ball waits after a point
}

// ArkanoidConfig contains all tuning for Arkanoid.
type ArkanoidConfig struct {
	Canvas   ArkanoidCanvas   `yaml:"canvas"`
	Paddle   ArkanoidPaddle   `yaml:"paddle"`
	Ball     ArkanoidBall     `yaml:"ball"`
	Gameplay ArkanoidGameplay `yaml:"gameplay"`
	Palette  []BrickColor     `yaml:"palette"`
}

// ArkanoidCanvas is the logical canvas size in base units.
type ArkanoidCanvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArkanoidPaddle defines paddle geometry.
type ArkanoidPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArkanoidBall defines the ball radius.
type ArkanoidBall struct {
	Size float64 `yaml:"size"`
}

// ArkanoidGameplay defines lives and effects density.
type ArkanoidGameplay struct {
	Lives   int  `yaml:"lives"`
	Compact bool `yaml:"compact"` // Smaller particle bursts
}

// BrickColor is one palette row as CSS hex colours.
type BrickColor struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Glow      string `yaml:"glow"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty selects normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
