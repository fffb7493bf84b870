package tui

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	toastTicks = 180 // three seconds at the default tick rate
	maxToasts  = 4
)

type toast struct {
	text  string
	color core.Color
	ticks int
}

// Toasts is a short queue of notifications drawn over the game in the top
// right corner. Each one expires after a fixed number of ticks.
type Toasts struct {
	items []toast
}

// Push adds a notification. The oldest one is dropped when the queue is full.
func (t *Toasts) Push(text string, color core.Color) {
	t.items = append(t.items, toast{text: text, color: color, ticks: toastTicks})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Tick ages every notification and drops expired ones.
func (t *Toasts) Tick() {
	kept := t.items[:0]
	for _, it := range t.items {
		it.ticks--
		if it.ticks > 0 {
			kept = append(kept, it)
		}
	}
	t.items = kept
}

// Len returns the number of visible notifications.
func (t *Toasts) Len() int {
	return len(t.items)
}

// Draw renders the queue right-aligned below the HUD row.
func (t *Toasts) Draw(dst *core.Screen) {
	for i, it := range t.items {
		text := " " + it.text + " "
		x := dst.Width() - len([]rune(text)) - 1
		dst.DrawText(max(x, 0), 2+i, text, it.color)
	}
}
