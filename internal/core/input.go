package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W - player one up
	ActionDown           // S - player one down
	ActionLeft           // A, Left arrow - Arkanoid paddle left
	ActionRight          // D, Right arrow - Arkanoid paddle right
	ActionAltUp          // Up arrow - player two up
	ActionAltDown        // Down arrow - player two down
	ActionConfirm        // Enter - start, advance, confirm
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Space - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAltUp:
		return "AltUp"
	case ActionAltDown:
		return "AltDown"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Held reports whether the action is a movement control that stays active
// while the key is down, as opposed to a one-shot command.
func (a Action) Held() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionAltUp, ActionAltDown:
		return true
	}
	return false
}

// Pointer is a mouse position in screen cells, standing in for touch.
type Pointer struct {
	Col, Row int
	Start    bool // true on press, false while dragging
}

// InputFrame represents the input state for a single simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	Pointer *Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Pointer = nil
}

// KeyLatch turns discrete key presses into held state. Terminals report
// presses and auto-repeats but never releases, so a press keeps its action
// active for a fixed number of ticks and each repeat refreshes it.
type KeyLatch struct {
	hold  int
	ticks map[Action]int
}

// NewKeyLatch creates a latch that holds each press for hold ticks.
func NewKeyLatch(hold int) *KeyLatch {
	return &KeyLatch{hold: max(hold, 1), ticks: make(map[Action]int)}
}

// Press activates the action for the next hold ticks.
// Pressing an action releases its opposite immediately.
func (l *KeyLatch) Press(a Action) {
	if opp, ok := opposites[a]; ok {
		delete(l.ticks, opp)
	}
	l.ticks[a] = l.hold
}

// Release drops every held action.
func (l *KeyLatch) Release() {
	clear(l.ticks)
}

// Apply sets every held action on the frame and ages the latch by one tick.
func (l *KeyLatch) Apply(f *InputFrame) {
	for a, n := range l.ticks {
		f.Set(a)
		if n <= 1 {
			delete(l.ticks, a)
		} else {
			l.ticks[a] = n - 1
		}
	}
}

var opposites = map[Action]Action{
	ActionUp:      ActionDown,
	ActionDown:    ActionUp,
	ActionLeft:    ActionRight,
	ActionRight:   ActionLeft,
	ActionAltUp:   ActionAltDown,
	ActionAltDown: ActionAltUp,
}
