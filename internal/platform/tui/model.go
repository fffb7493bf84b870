package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// GameModel is the Bubble Tea model that drives one game: it turns keys and
// mouse into input frames, steps the game on every tick and hands finished
// games to the recorder.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	recorder   *Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	latch      *core.KeyLatch
	keyMapper  *KeyMapper
	gameState  core.GameState
	toasts     *Toasts
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewGameModel creates a game model. recorder and renderer may be nil.
func NewGameModel(game registry.Game, recorder *Recorder, renderer *ScreenRenderer, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if renderer == nil {
		renderer = NewScreenRenderer(nil)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   renderer,
		recorder:   recorder,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		latch:      core.NewKeyLatch(keyHoldTicks),
		keyMapper:  NewKeyMapper(),
		toasts:     &Toasts{},
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.reportConfig()
	return tickCmd(m.config.TickRate)
}

// reportConfig tells the player when their tuning was replaced by defaults.
func (m GameModel) reportConfig() {
	cr, ok := m.game.(registry.ConfigReporter)
	if !ok {
		return
	}
	err := cr.ConfigErr()
	if err == nil {
		return
	}
	if m.recorder != nil {
		m.recorder.logger().Warn("game config ignored", "game", m.game.ID(), "error", err)
	}
	m.toasts.Push("Config ignored, using defaults", core.ColorBrightRed)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p := m.keyMapper.MapMouse(msg); p != nil {
			m.inputFrame.Pointer = p
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ResultMsg:
		m.handleResult(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.latch) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only when nothing is in play
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize keeps running games alive when they support rescaling and
// restarts the others.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	m.latch.Apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.toasts.Tick()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if o := result.Outcome; o != nil {
		if o.XP > 0 && !o.Shared {
			m.toasts.Push(fmt.Sprintf("+%d XP", o.XP), core.ColorBrightGreen)
		}
		cmds = append(cmds, m.recorder.Record(*o))
	}

	return m, tea.Batch(cmds...)
}

// handleResult shows what recording a game unlocked.
func (m GameModel) handleResult(msg ResultMsg) {
	for _, a := range msg.Unlocked {
		m.toasts.Push("Achievement: "+a.Name, core.ColorBrightYellow)
	}
	if msg.Err == nil && !msg.Outcome.Shared && msg.Stats.TotalGames > 0 {
		m.toasts.Push(fmt.Sprintf("Level %d %s", msg.Stats.Level(), msg.Stats.Rank()), core.ColorBrightCyan)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.toasts.Draw(m.screen)
	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Toasts exposes the notification queue.
func (m GameModel) Toasts() *Toasts {
	return m.toasts
}

// Run starts a Bubble Tea program for a single game. Back after the game
// ends or while paused exits the program.
func Run(game registry.Game, recorder *Recorder, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, recorder, nil, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse drag stands in for touch
	)

	_, err := p.Run()
	return err
}

// RunUntilBack runs one game and reports whether the player asked to go
// back to the menu rather than quit.
func RunUntilBack(game registry.Game, recorder *Recorder, cfg core.RuntimeConfig) (bool, error) {
	model := NewGameModel(game, recorder, nil, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
