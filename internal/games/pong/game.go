package pong

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/progress"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// Registered game IDs.
const (
	IDSingle = "pong"
	IDVersus = "pong_versus"
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

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game adapts an Engine to the registry.Game interface: it maps actions to
// keys, adds pause and a serve pause after each point, and reports the
// finished match.
type Game struct {
	id         string
	mode       Mode
	engine     *Engine
	runtime    core.RuntimeConfig
	preset     string
	configErr  error
	serveDelay int
	serving    int
	paused     bool
	ticks      int
}

// NewGame creates an adapter for the given mode. Reset must be called before Step.
func NewGame(mode Mode) *Game {
	id := IDSingle
	if mode == TwoPlayer {
		id = IDVersus
	}
	return &Game{id: id, mode: mode}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == TwoPlayer {
		return "Pong (2 players)"
	}
	return "Pong (vs CPU)"
}

// SettingsFromConfig converts YAML tuning into engine settings.
func SettingsFromConfig(cfg config.PongConfig) Settings {
	return Settings{
		CanvasWidth:       cfg.Table.Width,
		CanvasHeight:      cfg.Table.Height,
		PaddleHeight:      cfg.Paddles.Height,
		PaddleWidth:       cfg.Paddles.Width,
		BallSize:          cfg.Ball.Size,
		WinningScore:      cfg.Gameplay.WinningScore,
		PaddleSpeed:       cfg.Paddles.Speed,
		BallSpeed:         cfg.Ball.Speed,
		AIPaddleSpeed:     cfg.Paddles.Speed * cfg.AI.SpeedFactor,
		AITargetOffset:    cfg.AI.TargetOffset,
		BallSpeedIncrease: cfg.Ball.SpeedIncrease,
	}
}

// scaleFor derives the engine scale from the terminal width so that an
// 80-column terminal runs at scale 1.
func scaleFor(cols int) float64 {
	return core.Clamp(float64(cols)/80, 0.5, 3)
}

// Reset loads config and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.configErr = nil
	cfg, err := config.LoadPong(configPath)
	if err != nil {
		g.configErr = fmt.Errorf("pong: cannot load config, using defaults: %w", err)
		cfg = config.DefaultPongConfig()
	}
	name := difficultyPreset
	if g.preset != "" {
		name = g.preset
	}
	if preset, ok := config.ParsePreset(name); ok {
		config.ApplyPongPreset(&cfg, preset)
	}

	scale := scaleFor(runtime.ScreenW)
	engine, err := New(SettingsFromConfig(cfg), scale, WithSeed(runtime.Seed))
	if err != nil {
		// Invalid user tuning falls back to the stock settings
		g.configErr = fmt.Errorf("pong: config rejected, using defaults: %w", err)
		engine, _ = New(DefaultSettings(), scale, WithSeed(runtime.Seed))
	}

	g.engine = engine
	g.serveDelay = max(cfg.Gameplay.ServeDelay, 0)
	g.serving = g.serveDelay
	g.paused = false
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

// Resize rescales the running match to a new terminal width.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	//nolint:errcheck // scaleFor never returns a non-positive scale
	g.engine.UpdateScale(scaleFor(cols))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.engine.State().GameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if g.engine.State().GameOver {
		g.engine.Update(g.mode) // let the celebration particles play out
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	g.applyInput(in)

	if g.serving > 0 {
		g.serving--
		return core.StepResult{State: g.State()}
	}

	res := g.engine.Update(g.mode)
	if res.Score.Scored && !res.Game.Over {
		g.serving = g.serveDelay
	}

	result := core.StepResult{State: g.State()}
	if res.Game.Over {
		result.Outcome = g.outcome()
	}
	return result
}

func (g *Game) applyInput(in core.InputFrame) {
	if g.mode == TwoPlayer {
		g.engine.SetKeyState(KeyW, in.Has(core.ActionUp))
		g.engine.SetKeyState(KeyS, in.Has(core.ActionDown))
		g.engine.SetKeyState(KeyUp, in.Has(core.ActionAltUp))
		g.engine.SetKeyState(KeyDown, in.Has(core.ActionAltDown))
	} else {
		// Arrows also drive player one when the CPU owns the right paddle
		g.engine.SetKeyState(KeyW, in.Has(core.ActionUp) || in.Has(core.ActionAltUp))
		g.engine.SetKeyState(KeyS, in.Has(core.ActionDown) || in.Has(core.ActionAltDown))
	}

	if p := in.Pointer; p != nil {
		d := g.engine.ScaledDimensions()
		x, y := core.ProjectCell(p.Col, p.Row, g.runtime.ScreenW, g.runtime.ScreenH, d.CanvasWidth, d.CanvasHeight)
		g.engine.TouchPaddle(x, y, g.mode)
	}
}

func (g *Game) outcome() *core.Outcome {
	st, stats := g.engine.State(), g.engine.Stats()
	won := st.Winner == SidePlayer
	return &core.Outcome{
		GameID:        g.id,
		Mode:          g.mode.String(),
		Score:         st.PlayerScore,
		OpponentScore: st.OpponentScore,
		Won:           won,
		Shared:        g.mode == TwoPlayer,
		LongestRally:  stats.LongestStreak,
		XP:            progress.PongXP(won, st.PlayerScore, st.OpponentScore),
		Ticks:         g.ticks,
		TickRate:      g.runtime.TickRate,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	d := g.engine.ScaledDimensions()
	canvas := core.NewCellCanvas(dst, d.CanvasWidth, d.CanvasHeight)
	g.engine.Draw(canvas, d.CanvasWidth, d.CanvasHeight)

	right := "CPU"
	if g.mode == TwoPlayer {
		right = "P2"
	}
	dst.DrawText(1, 0, "P1", core.ColorBrightCyan)
	dst.DrawText(dst.Width()-len(right)-1, 0, right, core.ColorBrightMagenta)

	st := g.engine.State()
	switch {
	case st.GameOver:
		g.drawGameOver(dst, st)
	case g.paused:
		dst.DrawPanel(core.ColorBrightYellow, "PAUSED", "P: resume  B: menu")
	}
}

func (g *Game) drawGameOver(dst *core.Screen, st State) {
	title, color := "YOU WIN!", core.ColorBrightCyan
	switch {
	case g.mode == TwoPlayer && st.Winner == SidePlayer:
		title = "PLAYER 1 WINS!"
	case g.mode == TwoPlayer:
		title, color = "PLAYER 2 WINS!", core.ColorBrightMagenta
	case st.Winner == SideOpponent:
		title, color = "CPU WINS!", core.ColorOrange
	}

	lines := []string{title, fmt.Sprintf("%d - %d", st.PlayerScore, st.OpponentScore)}
	if g.mode == SinglePlayer {
		lines = append(lines, fmt.Sprintf("+%d XP", progress.PongXP(st.Winner == SidePlayer, st.PlayerScore, st.OpponentScore)))
	}
	lines = append(lines, "R: restart  B: menu")
	dst.DrawPanel(color, lines...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.engine.State()
	return core.GameState{
		Score:    st.PlayerScore,
		GameOver: st.GameOver,
		Paused:   g.paused,
	}
}

// Register both modes with the registry
func init() {
	registry.Register(IDSingle, func() registry.Game { return NewGame(SinglePlayer) })
	registry.Register(IDVersus, func() registry.Game { return NewGame(TwoPlayer) })
}
