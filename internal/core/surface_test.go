package core

import (
	"math"
	"testing"
)

func TestCellCanvasFillRect(t *testing.T) {
	s := NewScreen(80, 25)
	c := NewCellCanvas(s, 800, 500)

	// 100x100 canvas units -> 10x5 cells
	c.FillRect(100, 100, 100, 100, "#06b6d4")

	filled := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == '█' {
				filled++
			}
		}
	}
	if filled != 50 {
		t.Errorf("filled %d cells, expected 50", filled)
	}
	if s.GetCell(10, 5).Color == ColorDefault {
		t.Error("filled cell should carry a mapped colour")
	}
}

func TestCellCanvasTinyRectGetsACell(t *testing.T) {
	s := NewScreen(80, 25)
	c := NewCellCanvas(s, 800, 500)

	c.FillRect(400, 250, 2, 2, "#ffffff")
	if s.Get(40, 13) != '█' && s.Get(40, 12) != '█' {
		t.Errorf("sub-cell rectangle should still paint a cell:\n%s", s.String())
	}
}

func TestCellCanvasParticleGlyphFollowsAlpha(t *testing.T) {
	s := NewScreen(80, 25)
	c := NewCellCanvas(s, 800, 500)

	c.SetAlpha(1)
	c.FillCircle(105, 105, 2, "#a855f7")
	c.SetAlpha(0.5)
	c.FillCircle(205, 105, 2, "#a855f7")
	c.SetAlpha(0.1)
	c.FillCircle(305, 105, 2, "#a855f7")

	tests := []struct {
		x        int
		expected rune
	}{
		{10, '●'},
		{20, '•'},
		{30, '·'},
	}
	for _, tc := range tests {
		if got := s.Get(tc.x, 5); got != tc.expected {
			t.Errorf("glyph at column %d = %q, expected %q", tc.x, got, tc.expected)
		}
	}
}

func TestCellCanvasCellToCanvas(t *testing.T) {
	s := NewScreen(80, 25)
	c := NewCellCanvas(s, 800, 500)

	x, y := c.CellToCanvas(40, 12)
	if math.Abs(x-405) > 1e-9 || math.Abs(y-250) > 1e-9 {
		t.Errorf("CellToCanvas(40, 12) = (%v, %v), expected (405, 250)", x, y)
	}
}

func TestCellCanvasTextAlign(t *testing.T) {
	s := NewScreen(20, 1)
	c := NewCellCanvas(s, 20, 1)

	c.Text(10, 0, "ab", "#ffffff", AlignCenter)
	if s.Row(0)[9:11] != "ab" {
		t.Errorf("centred text misplaced: %q", s.Row(0))
	}
}

func TestHexMapsToExtendedPalette(t *testing.T) {
	tests := []string{"#ef4444", "#22c55e", "#3b82f6", "#ffffff"}
	for _, hex := range tests {
		c := Hex(hex)
		if c < 16 || c > 255 {
			t.Errorf("Hex(%q) = %d, expected an extended palette code", hex, c)
		}
	}

	if Hex("not-a-colour") != ColorDefault {
		t.Error("invalid hex should map to ColorDefault")
	}
	if Hex("#ffffff") != 231 {
		t.Errorf("Hex(#ffffff) = %d, expected 231", Hex("#ffffff"))
	}
}

func TestFadeDarkensTowardBackground(t *testing.T) {
	full := Fade("#ffffff", 1)
	faded := Fade("#ffffff", 0.2)
	if full == faded {
		t.Error("fading should change the mapped colour")
	}
}
