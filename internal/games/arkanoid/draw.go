package arkanoid

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	colorPaddle = "#6366f1"
	colorBall   = "#ec4899"
	colorHUD    = "#e2e8f0"
	colorLives  = "#f43f5e"
)

// Draw renders the board onto dst, whose canvas is w x h units. It only
// reads engine state.
func (e *Engine) Draw(dst core.Surface, w, h float64) {
	d := e.ScaledDimensions()
	inset := 2 * e.scale

	dst.SetAlpha(1)
	dst.Clear(core.Background)

	for _, b := range e.bricks {
		if b.Destroyed {
			continue
		}
		dst.FillRect(b.X, b.Y, b.W, b.H, b.Color.Primary)
		dst.FillRect(b.X+inset, b.Y+inset, b.W-2*inset, b.H-2*inset, b.Color.Secondary)
	}

	dst.FillRect(e.state.PaddleX, d.PaddleY, d.PaddleWidth, d.PaddleHeight, colorPaddle)
	dst.FillCircle(e.state.BallX, e.state.BallY, d.BallSize, colorBall)

	e.particles.Draw(dst, e.scale)

	hudY := 30 * e.scale
	dst.Text(10*e.scale, hudY, fmt.Sprintf("SCORE %d", e.state.Score), colorHUD, core.AlignLeft)
	dst.Text(w/2, hudY, fmt.Sprintf("LEVEL %d", e.state.Level), colorHUD, core.AlignCenter)
	dst.Text(w-10*e.scale, hudY, strings.Repeat("♥", e.state.Lives), colorLives, core.AlignRight)
}
