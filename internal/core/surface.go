package core

import "math"

// Align controls horizontal text anchoring on a Surface.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target addressed in canvas units.
// Colours are CSS-style hex strings; SetAlpha affects later calls.
type Surface interface {
	Clear(color string)
	FillRect(x, y, w, h float64, color string)
	FillCircle(cx, cy, r float64, color string)
	DashedLine(x1, y1, x2, y2, dash float64, color string)
	Text(x, y float64, text, color string, align Align)
	SetAlpha(alpha float64)
}

// CellCanvas projects a logical canvas of w x h units onto a Screen.
type CellCanvas struct {
	screen *Screen
	sx, sy float64 // cells per canvas unit
	alpha  float64
}

// NewCellCanvas maps a w x h canvas onto the whole screen.
func NewCellCanvas(screen *Screen, w, h float64) *CellCanvas {
	c := &CellCanvas{screen: screen, alpha: 1}
	if w > 0 {
		c.sx = float64(screen.Width()) / w
	}
	if h > 0 {
		c.sy = float64(screen.Height()) / h
	}
	return c
}

// CellToCanvas converts a cell position to the canvas point at the cell's centre.
func (c *CellCanvas) CellToCanvas(col, row int) (float64, float64) {
	if c.sx == 0 || c.sy == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / c.sx, (float64(row) + 0.5) / c.sy
}

// ProjectCell maps a cell on a cols x rows screen to a point on a w x h canvas.
func ProjectCell(col, row, cols, rows int, w, h float64) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) * w / float64(cols), (float64(row) + 0.5) * h / float64(rows)
}

func (c *CellCanvas) col(x float64) int { return int(math.Floor(x * c.sx)) }
func (c *CellCanvas) row(y float64) int { return int(math.Floor(y * c.sy)) }

func (c *CellCanvas) color(hex string) Color {
	return Fade(hex, c.alpha)
}

// SetAlpha sets the opacity used by subsequent draws.
func (c *CellCanvas) SetAlpha(alpha float64) {
	c.alpha = Clamp(alpha, 0, 1)
}

// Clear blanks the screen. The terminal background stands in for the colour.
func (c *CellCanvas) Clear(string) {
	c.screen.Clear()
}

// FillRect paints every cell the rectangle covers; tiny rectangles still get one cell.
func (c *CellCanvas) FillRect(x, y, w, h float64, color string) {
	x0, y0 := int(math.Round(x*c.sx)), int(math.Round(y*c.sy))
	x1, y1 := int(math.Round((x+w)*c.sx)), int(math.Round((y+h)*c.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	c.screen.FillCells(x0, y0, x1, y1, '█', c.color(color))
}

// FillCircle paints a disc. Discs smaller than a cell become a single glyph
// whose weight follows the current alpha.
func (c *CellCanvas) FillCircle(cx, cy, r float64, color string) {
	col := c.color(color)
	if 2*r*c.sx < 1.5 || 2*r*c.sy < 1.5 {
		glyph := '●'
		switch {
		case c.alpha < 0.35:
			glyph = '·'
		case c.alpha < 0.7:
			glyph = '•'
		}
		c.screen.SetCell(c.col(cx), c.row(cy), glyph, col)
		return
	}

	for row := c.row(cy - r); row <= c.row(cy+r); row++ {
		for cl := c.col(cx - r); cl <= c.col(cx+r); cl++ {
			px, py := c.CellToCanvas(cl, row)
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= r*r {
				c.screen.SetCell(cl, row, '█', col)
			}
		}
	}
}

// DashedLine draws a line made of dash-long segments separated by equal gaps.
func (c *CellCanvas) DashedLine(x1, y1, x2, y2, dash float64, color string) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	steps := int(math.Max(math.Abs(dx*c.sx), math.Abs(dy*c.sy)))
	if steps == 0 || length == 0 {
		return
	}

	glyph := '·'
	switch {
	case dx == 0:
		glyph = '│'
	case dy == 0:
		glyph = '─'
	}

	col := c.color(color)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if dash > 0 && int(t*length/dash)%2 == 1 {
			continue
		}
		c.screen.SetCell(c.col(x1+dx*t), c.row(y1+dy*t), glyph, col)
	}
}

// Text writes a string anchored at canvas point (x, y).
func (c *CellCanvas) Text(x, y float64, text, color string, align Align) {
	n := len([]rune(text))
	col := c.col(x)
	switch align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	c.screen.DrawText(col, c.row(y), text, c.color(color))
}
