package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/games/arkanoid"
	"github.com/vovakirdan/neon-arcade/internal/games/pong"
	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Pong controls:
  W/S        - Left paddle (arrows also move it against the CPU)
  Up/Down    - Right paddle in two-player mode
  Mouse drag - Move the paddle under the pointer

Arkanoid controls:
  A/D, Left/Right - Move paddle
  Mouse drag      - Move paddle
  Enter/Click     - Start, next level

Common:
  P/Space    - Pause
  R          - Restart (after game over)
  B/Esc      - Back (when paused or over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow CPU and gentle ball acceleration; more lives, wider paddle
  normal - Stock tuning
  hard   - Fast CPU and quick acceleration; fewer lives, narrower paddle
  fixed  - No ball acceleration

Running 'arcade play pong' without --difficulty opens the mode picker.

Examples:
  arcade play pong
  arcade play pong --difficulty hard
  arcade play pong_versus
  arcade play arkanoid --difficulty easy
  arcade play arkanoid --config ./my-arkanoid.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	cfg := runtimeConfig()

	switch gameID {
	case pong.IDSingle, pong.IDVersus:
		pong.SetConfigPath(flagConfig)
		pong.SetDifficultyPreset(flagDifficulty)

		if gameID == pong.IDSingle && flagDifficulty == "" {
			selection, err := tui.RunPongModeSelector(cfg)
			if err != nil {
				return err
			}
			// User pressed back or quit
			if selection == nil {
				return nil
			}
			gameID = selection.GameID
			pong.SetDifficultyPreset(selection.Difficulty)
		}

	case arkanoid.ID:
		arkanoid.SetConfigPath(flagConfig)
		arkanoid.SetDifficultyPreset(flagDifficulty)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger := newLogger(true)
	recorder := newRecorder(logger)
	if recorder.Store != nil {
		defer recorder.Store.Close()
	}

	logger.Info("starting game", "game", gameID, "player", flagPlayer, "fps", cfg.TickRate)
	if err := tui.Run(game, recorder, cfg); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}
