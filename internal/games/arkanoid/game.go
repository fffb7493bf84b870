package arkanoid

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/progress"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// ID is the registered game identifier.
const ID = "arkanoid"

// Host phases
const (
	StateMenu          = "menu"          // Title card, waiting for start
	StatePlaying       = "playing"       // Ball in play
	StatePaused        = "paused"        // Game paused
	StateLevelComplete = "levelcomplete" // Grid cleared, waiting to advance
	StateGameOver      = "gameover"      // No lives left
)

// Package-level config settings (set by CLI before game creation)
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game wraps an Engine with the menu, pause and level transitions and turns
// engine events into session XP and a final outcome.
type Game struct {
	engine    *Engine
	runtime   core.RuntimeConfig
	preset    string
	configErr error
	state     string
	sessionXP int
	levelXP   int // XP awarded for the most recent cleared level
	ticks     int
}

// NewGame creates an Arkanoid adapter. Reset must be called before Step.
func NewGame() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arkanoid"
}

// SettingsFromConfig converts YAML tuning into engine settings.
func SettingsFromConfig(cfg config.ArkanoidConfig) Settings {
	palette := make([]BrickColor, len(cfg.Palette))
	for i, c := range cfg.Palette {
		palette[i] = BrickColor{Primary: c.Primary, Secondary: c.Secondary, Glow: c.Glow}
	}
	return Settings{
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
		PaddleWidth:  cfg.Paddle.Width,
		PaddleHeight: cfg.Paddle.Height,
		BallSize:     cfg.Ball.Size,
		InitialLives: cfg.Gameplay.Lives,
		Palette:      palette,
		Compact:      cfg.Gameplay.Compact,
	}
}

func scaleFor(cols int) float64 {
	return core.Clamp(float64(cols)/80, 0.5, 3)
}

// Reset loads config and shows the title card of a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.configErr = nil
	cfg, err := config.LoadArkanoid(configPath)
	if err != nil {
		g.configErr = fmt.Errorf("arkanoid: cannot load config, using defaults: %w", err)
		cfg = config.DefaultArkanoidConfig()
	}
	name := difficultyPreset
	if g.preset != "" {
		name = g.preset
	}
	if preset, ok := config.ParsePreset(name); ok {
		config.ApplyArkanoidPreset(&cfg, preset)
	}

	scale := scaleFor(runtime.ScreenW)
	engine, err := New(SettingsFromConfig(cfg), scale, WithSeed(runtime.Seed))
	if err != nil {
		// Invalid user tuning falls back to the stock settings
		g.configErr = fmt.Errorf("arkanoid: config rejected, using defaults: %w", err)
		engine, _ = New(DefaultSettings(), scale, WithSeed(runtime.Seed))
	}

	g.engine = engine
	g.state = StateMenu
	g.sessionXP = 0
	g.levelXP = 0
	g.ticks = 0
}

// ConfigErr returns why the last Reset ignored the user's tuning, or nil.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// SetDifficulty overrides the package-level preset for this instance. It
// takes effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = preset
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Phase returns the host phase.
func (g *Game) Phase() string {
	return g.state
}

// SessionXP returns the XP earned so far in this game.
func (g *Game) SessionXP() int {
	return g.sessionXP
}

// Resize rescales the running game to a new terminal width.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	//nolint:errcheck // scaleFor never returns a non-positive scale
	g.engine.UpdateScale(scaleFor(cols))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	start := in.Has(core.ActionConfirm) || (in.Pointer != nil && in.Pointer.Start)

	switch g.state {
	case StateMenu:
		if start {
			g.state = StatePlaying
		}
		return core.StepResult{State: g.State()}

	case StateLevelComplete:
		if start {
			g.engine.NextLevel()
			g.state = StatePlaying
		}

	case StateGameOver:
		if start || in.Has(core.ActionRestart) {
			g.engine.ResetGame(true)
			g.sessionXP = 0
			g.ticks = 0
			g.state = StatePlaying
			return core.StepResult{State: g.State()}
		}

	case StatePlaying, StatePaused:
		if in.Has(core.ActionPause) {
			if g.state == StatePaused {
				g.state = StatePlaying
			} else {
				g.state = StatePaused
			}
		}
		if g.state == StatePaused {
			return core.StepResult{State: g.State()}
		}
		g.applyInput(in)
	}

	if g.state == StatePlaying {
		g.ticks++
	}

	var result core.StepResult
	for _, ev := range g.engine.Update() {
		switch ev := ev.(type) {
		case LevelComplete:
			g.levelXP = progress.ArkanoidLevelXP(ev.Level, ev.Score, ev.Lives)
			g.sessionXP += g.levelXP
			g.state = StateLevelComplete
		case GameOver:
			g.sessionXP += progress.ArkanoidGameOverXP(ev.Level, ev.Score)
			g.state = StateGameOver
			result.Outcome = g.outcome()
		}
	}
	result.State = g.State()
	return result
}

func (g *Game) applyInput(in core.InputFrame) {
	g.engine.SetKeyState(KeyLeft, in.Has(core.ActionLeft))
	g.engine.SetKeyState(KeyRight, in.Has(core.ActionRight))

	if p := in.Pointer; p != nil {
		d := g.engine.ScaledDimensions()
		x, _ := core.ProjectCell(p.Col, p.Row, g.runtime.ScreenW, g.runtime.ScreenH, d.CanvasWidth, d.CanvasHeight)
		g.engine.TouchPaddle(x)
	}
}

// outcome summarises the finished game. Clearing at least one level counts
// as a win.
func (g *Game) outcome() *core.Outcome {
	st, stats := g.engine.State(), g.engine.Stats()
	return &core.Outcome{
		GameID:          ID,
		Mode:            "campaign",
		Score:           st.Score,
		Won:             st.Level > 1,
		Level:           st.Level,
		Lives:           st.Lives,
		BricksDestroyed: stats.BricksDestroyed,
		XP:              g.sessionXP,
		Ticks:           g.ticks,
		TickRate:        g.runtime.TickRate,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	d := g.engine.ScaledDimensions()
	canvas := core.NewCellCanvas(dst, d.CanvasWidth, d.CanvasHeight)
	g.engine.Draw(canvas, d.CanvasWidth, d.CanvasHeight)

	st := g.engine.State()
	switch g.state {
	case StateMenu:
		dst.DrawPanel(core.ColorBrightMagenta, "ARKANOID",
			"←/→ or A/D: move  P: pause",
			"Enter or click to start")
	case StatePaused:
		dst.DrawPanel(core.ColorBrightYellow, "PAUSED", "P: resume  B: menu")
	case StateLevelComplete:
		dst.DrawPanel(core.ColorBrightGreen, fmt.Sprintf("LEVEL %d CLEAR!", st.Level),
			fmt.Sprintf("Score: %d", st.Score),
			fmt.Sprintf("+%d XP", g.levelXP),
			"Enter: next level")
	case StateGameOver:
		dst.DrawPanel(core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d  Level: %d", st.Score, st.Level),
			fmt.Sprintf("Session XP: %d", g.sessionXP),
			"R: restart  B: menu")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.State().Score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game { return NewGame() })
}
