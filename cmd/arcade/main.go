// arcade is a terminal arcade for Pong and Arkanoid.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade stats [player]    - Show player stats, achievements and leaderboard
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.arcade/scores.db)
//	--player <name>   - Player name for recorded games (default: $USER)
//
// Environment (also read from ./.env and ~/.arcade/.env):
//
//	ARCADE_LOG_LEVEL  - debug, info, warn, error (default: info)
//	ARCADE_API_URL    - Base URL of the remote score API; reporting is off when unset
//	ARCADE_API_TOKEN  - Bearer token for the remote score API
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
	"github.com/vovakirdan/neon-arcade/internal/report"
	"github.com/vovakirdan/neon-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/neon-arcade/internal/games/arkanoid"
	_ "github.com/vovakirdan/neon-arcade/internal/games/pong"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagPlayer string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Neon Arcade - Pong and Arkanoid in your terminal",
	Long: `Neon Arcade plays Pong and Arkanoid directly in your terminal, locally
or over SSH. Finished games earn XP, unlock achievements and can be
reported to a remote score API.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  stats    - View player stats and the leaderboard

Examples:
  arcade list
  arcade play arkanoid
  arcade play pong --difficulty hard
  arcade menu --player ada
  arcade serve --ssh :2222
  arcade scores pong`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for recorded games")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func arcadeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".arcade")
}

// reportConfig reads the reporter settings from the environment and .env files.
func reportConfig(logger *log.Logger) report.Config {
	return report.ConfigFromEnv(logger, ".env", filepath.Join(arcadeDir(), ".env"))
}

// newLogger builds the process logger. Interactive runs write to
// ~/.arcade/arcade.log so the alt screen stays clean.
func newLogger(interactive bool) *log.Logger {
	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		dir := arcadeDir()
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				w = f
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	if lvl, err := log.ParseLevel(os.Getenv("ARCADE_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// newRecorder opens the score database and, when configured, the remote
// reporter. A database that cannot be opened is logged and skipped.
func newRecorder(logger *log.Logger) *tui.Recorder {
	rec := &tui.Recorder{Player: flagPlayer, Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		rec.Store = store
	}

	if cfg := reportConfig(logger); cfg.Enabled() {
		rec.Reporter = report.New(cfg, logger)
		logger.Info("reporting results", "url", cfg.BaseURL)
	}
	return rec
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
