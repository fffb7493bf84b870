package pong

import (
	"strconv"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	colorNet  = "#334155"
	colorBall = "#f8fafc"
)

// Draw renders the table onto dst, whose canvas is w x h units. It only
// reads engine state.
func (e *Engine) Draw(dst core.Surface, w, h float64) {
	d := e.ScaledDimensions()

	dst.SetAlpha(1)
	dst.Clear(core.Background)
	dst.DashedLine(w/2, 0, w/2, h, 10*e.scale, colorNet)

	dst.FillRect(d.Paddle1X, e.state.Paddle1Y, d.PaddleWidth, d.PaddleHeight, ColorPlayer)
	dst.FillRect(d.Paddle2X, e.state.Paddle2Y, d.PaddleWidth, d.PaddleHeight, ColorOpponent)
	dst.FillCircle(e.state.BallX, e.state.BallY, d.BallSize, colorBall)

	e.particles.Draw(dst, e.scale)

	dst.Text(w/4, 30*e.scale, strconv.Itoa(e.state.PlayerScore), ColorPlayer, core.AlignCenter)
	dst.Text(3*w/4, 30*e.scale, strconv.Itoa(e.state.OpponentScore), ColorOpponent, core.AlignCenter)
}
