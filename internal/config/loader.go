package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPong loads Pong configuration.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func LoadPong(customPath string) (PongConfig, error) {
	return load(customPath, "pong.yaml", defaultPongYAML, DefaultPongConfig)
}

// LoadArkanoid loads Arkanoid configuration with the same search order as LoadPong.
// A config without a palette gets the default one.
func LoadArkanoid(customPath string) (ArkanoidConfig, error) {
	cfg, err := load(customPath, "arkanoid.yaml", defaultArkanoidYAML, DefaultArkanoidConfig)
	if err == nil && len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette()
	}
	return cfg, err
}

func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// A custom path must load; it is an explicit user request
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPongPreset tunes the opponent and ball acceleration for a preset.
// Fixed keeps the configured opponent and turns off acceleration.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.AI.SpeedFactor = 0.6
		cfg.AI.TargetOffset = 50
		cfg.Ball.SpeedIncrease = 1.05
	case DifficultyHard:
		cfg.AI.SpeedFactor = 1.0
		cfg.AI.TargetOffset = 20
		cfg.Ball.SpeedIncrease = 1.15
	case DifficultyFixed:
		cfg.Ball.SpeedIncrease = 1.0
	}
}

// ApplyArkanoidPreset adjusts lives and paddle width for a preset.
func ApplyArkanoidPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width *= 1.25
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width *= 0.75
	}
}
