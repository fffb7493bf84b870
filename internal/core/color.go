package core

import (
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an ANSI 256-color code for a screen cell.
// ColorDefault leaves the terminal's foreground untouched.
type Color int16

// Predefined colors for HUD and menu elements.
const (
	ColorDefault       Color = -1
	ColorBlack         Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorOrange        Color = 208
	ColorGray          Color = 245
)

// Background is the canvas clear colour the engines draw on.
const Background = "#0a0a14"

var (
	palette     []colorful.Color
	paletteOnce sync.Once

	hexCache sync.Map // hex string + alpha bucket -> Color
)

// xtermPalette builds the 6x6x6 cube and grey ramp of the 256-color palette.
// The first 16 entries are skipped since terminals theme them freely.
func xtermPalette() []colorful.Color {
	levels := []float64{0, 95, 135, 175, 215, 255}
	out := make([]colorful.Color, 0, 240)
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				out = append(out, colorful.Color{
					R: levels[r] / 255,
					G: levels[g] / 255,
					B: levels[b] / 255,
				})
			}
		}
	}
	for i := range 24 {
		v := float64(8+i*10) / 255
		out = append(out, colorful.Color{R: v, G: v, B: v})
	}
	return out
}

func nearest(c colorful.Color) Color {
	paletteOnce.Do(func() { palette = xtermPalette() })

	best, bestDist := 0, math.MaxFloat64
	for i, p := range palette {
		if d := c.DistanceLab(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return Color(16 + best)
}

// Hex maps a CSS-style hex colour onto the closest ANSI 256-color code.
// Unparseable input yields ColorDefault.
func Hex(hex string) Color {
	return Fade(hex, 1)
}

// Fade blends a hex colour toward the canvas background by 1-alpha and
// returns the nearest ANSI code. Alpha is bucketed to tenths for caching.
func Fade(hex string, alpha float64) Color {
	bucket := int(math.Round(Clamp(alpha, 0, 1) * 10))
	key := hexKey{hex: hex, bucket: bucket}
	if c, ok := hexCache.Load(key); ok {
		return c.(Color)
	}

	fg, err := colorful.Hex(hex)
	if err != nil {
		return ColorDefault
	}
	bg, _ := colorful.Hex(Background)

	c := nearest(bg.BlendLab(fg, float64(bucket)/10).Clamped())
	hexCache.Store(key, c)
	return c
}

type hexKey struct {
	hex    string
	bucket int
}
