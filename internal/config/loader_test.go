package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var pong PongConfig
	if err := yaml.Unmarshal(GetDefaultYAML("pong"), &pong); err != nil {
		t.Fatalf("embedded pong.yaml: %v", err)
	}
	if pong != DefaultPongConfig() {
		t.Errorf("embedded pong config %+v differs from DefaultPongConfig()", pong)
	}

	var ark ArkanoidConfig
	if err := yaml.Unmarshal(GetDefaultYAML("arkanoid"), &ark); err != nil {
		t.Fatalf("embedded arkanoid.yaml: %v", err)
	}
	want := DefaultArkanoidConfig()
	if ark.Canvas != want.Canvas || ark.Paddle != want.Paddle || ark.Gameplay != want.Gameplay {
		t.Errorf("embedded arkanoid config %+v differs from defaults", ark)
	}
	if len(ark.Palette) != len(want.Palette) {
		t.Fatalf("palette has %d rows, expected %d", len(ark.Palette), len(want.Palette))
	}
	for i := range want.Palette {
		if ark.Palette[i] != want.Palette[i] {
			t.Errorf("palette row %d = %+v", i, ark.Palette[i])
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	data := []byte("gameplay:\n  winning_score: 3\nball:\n  speed: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong() failed: %v", err)
	}
	if cfg.Gameplay.WinningScore != 3 || cfg.Ball.Speed != 7 {
		t.Errorf("LoadPong() = %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadPong(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("table: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadArkanoid(path); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestLoadArkanoidFillsPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arkanoid.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArkanoid(path)
	if err != nil {
		t.Fatalf("LoadArkanoid() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 4 || len(cfg.Palette) != 6 {
		t.Errorf("LoadArkanoid() = %+v", cfg)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		aiFactor     float64
		increase     float64
		arkanoidLife int
	}{
		{DifficultyEasy, 0.6, 1.05, 5},
		{DifficultyNormal, 0.8, 1.1, 3},
		{DifficultyHard, 1.0, 1.15, 2},
		{DifficultyFixed, 0.8, 1.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			pong := DefaultPongConfig()
			ApplyPongPreset(&pong, tc.preset)
			if pong.AI.SpeedFactor != tc.aiFactor || pong.Ball.SpeedIncrease != tc.increase {
				t.Errorf("pong preset = %+v", pong)
			}

			ark := DefaultArkanoidConfig()
			ApplyArkanoidPreset(&ark, tc.preset)
			if ark.Gameplay.Lives != tc.arkanoidLife {
				t.Errorf("arkanoid lives = %d, expected %d", ark.Gameplay.Lives, tc.arkanoidLife)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("impossible"); ok {
		t.Error("unknown preset should be rejected")
	}
}
