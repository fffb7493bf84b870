package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/games/pong"
)

// PongSelection holds the user's choice from the Pong menu.
type PongSelection struct {
	GameID     string // pong.IDSingle or pong.IDVersus
	Difficulty string // easy, normal, hard; only asked for vs CPU
}

var (
	pongModes = []struct {
		label string
		id    string
	}{
		{"1 Player (vs CPU)", pong.IDSingle},
		{"2 Players (W/S vs Up/Down)", pong.IDVersus},
	}
	pongDifficulties = []string{"easy", "normal", "hard"}
)

// PongModeModel lets users choose the Pong mode and, against the CPU, its
// difficulty.
type PongModeModel struct {
	cursor       int
	diffCursor   int
	inDiffSelect bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    PongSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewPongModeModel creates a new Pong mode selection model.
func NewPongModeModel(width, height int) PongModeModel {
	return PongModeModel{
		diffCursor: 1, // normal
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		choosing:   true,
	}
}

// Init initializes the model.
func (m PongModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PongModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m PongModeModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	cursor, limit := &m.cursor, len(pongModes)
	if m.inDiffSelect {
		cursor, limit = &m.diffCursor, len(pongDifficulties)
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if *cursor > 0 {
			*cursor--
		}
	case MenuActionDown:
		if *cursor < limit-1 {
			*cursor++
		}
	case MenuActionBack:
		if m.inDiffSelect {
			m.inDiffSelect = false
			return m, nil
		}
		m.back = true
		return m, tea.Quit
	case MenuActionSelect:
		id := pongModes[m.cursor].id
		if id == pong.IDSingle && !m.inDiffSelect {
			m.inDiffSelect = true
			return m, nil
		}
		m.choosing = false
		m.selection = PongSelection{GameID: id}
		if id == pong.IDSingle {
			m.selection.Difficulty = pongDifficulties[m.diffCursor]
		}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the mode or difficulty list.
func (m PongModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P O N G"), m.width))
	b.WriteString("\n\n")

	var options []string
	cursor := m.cursor
	if m.inDiffSelect {
		b.WriteString(centerText("CPU difficulty:", m.width))
		options, cursor = pongDifficulties, m.diffCursor
	} else {
		b.WriteString(centerText("Select game mode:", m.width))
		for _, mode := range pongModes {
			options = append(options, mode.label)
		}
	}
	b.WriteString("\n\n")

	for i, opt := range options {
		line := "  " + opt
		if i == cursor {
			line = menuCursorStyle.Render("> " + opt)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m PongModeModel) Selected() *PongSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PongModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PongModeModel) WantsBack() bool {
	return m.back
}

// RunPongModeSelector runs the Pong mode selection and returns the selection,
// or nil when the user backed out.
func RunPongModeSelector(cfg core.RuntimeConfig) (*PongSelection, error) {
	p := tea.NewProgram(NewPongModeModel(cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(PongModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
