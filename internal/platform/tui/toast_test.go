package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func TestToastsExpire(t *testing.T) {
	var ts Toasts
	ts.Push("+100 XP", core.ColorBrightGreen)

	for range toastTicks - 1 {
		ts.Tick()
	}
	if ts.Len() != 1 {
		t.Fatalf("Len() = %d before expiry", ts.Len())
	}
	ts.Tick()
	if ts.Len() != 0 {
		t.Errorf("Len() = %d after expiry", ts.Len())
	}
}

func TestToastsDropOldest(t *testing.T) {
	var ts Toasts
	for i := range maxToasts + 2 {
		ts.Push(strings.Repeat("x", i+1), core.ColorWhite)
	}
	if ts.Len() != maxToasts {
		t.Fatalf("Len() = %d, expected %d", ts.Len(), maxToasts)
	}
	if ts.items[0].text != "xxx" {
		t.Errorf("oldest kept = %q", ts.items[0].text)
	}
}

func TestToastsDraw(t *testing.T) {
	var ts Toasts
	ts.Push("Achievement: First Victory", core.ColorBrightYellow)

	screen := core.NewScreen(40, 5)
	ts.Draw(screen)

	row := screen.Row(2)
	if !strings.HasSuffix(strings.TrimRight(row, " "), "Achievement: First Victory") {
		t.Errorf("row 2 = %q", row)
	}
}
