// Package pong implements a two-paddle volley simulation and its terminal
// adapter. The Engine is pure: no I/O, one synchronous step per Update.
package pong

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/particles"
)

// Particle colours.
const (
	ColorPlayer      = "#06b6d4"
	ColorOpponent    = "#a855f7"
	ColorOpponentWin = "#f59e0b"
)

// Win celebration burst points in base canvas units.
var (
	playerWinBursts   = [][2]float64{{200, 250}, {300, 150}, {400, 350}}
	opponentWinBursts = [][2]float64{{600, 250}, {500, 150}, {700, 350}}
)

// State is the mutable simulation state. Positions are in scaled canvas units.
type State struct {
	BallX, BallY   float64
	BallVX, BallVY float64
	Paddle1Y       float64
	Paddle2Y       float64
	PlayerScore    int
	OpponentScore  int
	GameOver       bool
	Winner         Side
}

// Stats are rally counters kept alongside the state for the host.
type Stats struct {
	Ticks         int // Updates that advanced the simulation
	PlayerHits    int
	OpponentHits  int
	Streak        int // Player returns since the opponent last scored
	LongestStreak int
}

// Collision reports a paddle contact during a tick.
type Collision struct {
	Hit  bool
	Side Side
}

// Point reports a point scored during a tick.
type Point struct {
	Scored bool
	Scorer Side
}

// GameEnd reports the end of the game. It is set only on the deciding tick.
type GameEnd struct {
	Over   bool
	Winner Side
}

// Result is the outcome of one Update.
type Result struct {
	Collision Collision
	Score     Point
	Game      GameEnd
}

// Engine simulates one Pong session.
type Engine struct {
	settings  Settings
	scale     float64
	state     State
	stats     Stats
	keys      Keys
	rng       *rand.Rand
	particles *particles.System
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRand injects the random source used for serves and particles.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New validates settings and scale and returns an engine with the ball at
// the centre moving (ballSpeed, ballSpeed) and both paddles centred.
func New(settings Settings, scale float64, opts ...Option) (*Engine, error) {
	resolved, err := settings.Resolve()
	if err != nil {
		return nil, err
	}
	if !core.ValidScale(scale) {
		return nil, fmt.Errorf("pong: %w: %v", core.ErrInvalidScale, scale)
	}

	e := &Engine{settings: resolved, scale: scale}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.particles = particles.New(e.rng)
	e.ResetGame()
	return e, nil
}

// ScaledDimensions returns the settings multiplied by the current scale.
func (e *Engine) ScaledDimensions() Dimensions {
	s := e.scale
	w := e.settings.CanvasWidth * s
	pw := e.settings.PaddleWidth * s
	return Dimensions{
		CanvasWidth:  w,
		CanvasHeight: e.settings.CanvasHeight * s,
		PaddleWidth:  pw,
		PaddleHeight: e.settings.PaddleHeight * s,
		BallSize:     e.settings.BallSize * s,
		Paddle1X:     paddleInset * s,
		Paddle2X:     w - paddleInset*s - pw,
	}
}

// Update advances the simulation by one tick. Once the game is over only
// particles keep moving until ResetGame.
func (e *Engine) Update(mode Mode) Result {
	var res Result
	if e.state.GameOver {
		e.particles.Step()
		return res
	}

	d := e.ScaledDimensions()
	e.stats.Ticks++

	e.movePlayer(d)
	if mode == TwoPlayer {
		e.moveSecondPlayer(d)
	} else {
		e.moveAI(d)
	}

	prevX, prevY := e.state.BallX, e.state.BallY
	e.state.BallX += e.state.BallVX
	e.state.BallY += e.state.BallVY

	e.bounceWalls(d)
	res.Collision = e.checkPaddles(d, prevX, prevY)
	res.Score = e.checkScore(d)
	if res.Score.Scored {
		res.Game = e.checkWin()
	}

	e.particles.Step()
	return res
}

func (e *Engine) movePlayer(d Dimensions) {
	step := e.settings.PaddleSpeed * e.scale
	if e.keys.W {
		e.state.Paddle1Y -= step
	}
	if e.keys.S {
		e.state.Paddle1Y += step
	}
	e.state.Paddle1Y = core.Clamp(e.state.Paddle1Y, 0, d.CanvasHeight-d.PaddleHeight)
}

func (e *Engine) moveSecondPlayer(d Dimensions) {
	step := e.settings.PaddleSpeed * e.scale
	if e.keys.Up {
		e.state.Paddle2Y -= step
	}
	if e.keys.Down {
		e.state.Paddle2Y += step
	}
	e.state.Paddle2Y = core.Clamp(e.state.Paddle2Y, 0, d.CanvasHeight-d.PaddleHeight)
}

// moveAI tracks the ball only when it is outside the dead zone around the
// paddle centre, which keeps the opponent beatable.
func (e *Engine) moveAI(d Dimensions) {
	center := e.state.Paddle2Y + d.PaddleHeight/2
	offset := e.settings.AITargetOffset * e.scale
	step := e.settings.AIPaddleSpeed * e.scale

	switch {
	case center < e.state.BallY-offset:
		e.state.Paddle2Y += step
	case center > e.state.BallY+offset:
		e.state.Paddle2Y -= step
	}
	e.state.Paddle2Y = core.Clamp(e.state.Paddle2Y, 0, d.CanvasHeight-d.PaddleHeight)
}

func (e *Engine) bounceWalls(d Dimensions) {
	r := d.BallSize
	switch {
	case e.state.BallY-r < 0 && e.state.BallVY < 0:
		e.state.BallVY = -e.state.BallVY
		e.state.BallY = r
	case e.state.BallY+r > d.CanvasHeight && e.state.BallVY > 0:
		e.state.BallVY = -e.state.BallVY
		e.state.BallY = d.CanvasHeight - r
	}
}

// LeftHitZone is the box between the left canvas edge and the left paddle's
// face. A ball can never slip between the paddle and the edge.
func (e *Engine) LeftHitZone() core.Rect {
	d := e.ScaledDimensions()
	return core.NewRect(0, e.state.Paddle1Y, d.Paddle1X+d.PaddleWidth, d.PaddleHeight)
}

// RightHitZone mirrors LeftHitZone for the right paddle.
func (e *Engine) RightHitZone() core.Rect {
	d := e.ScaledDimensions()
	return core.NewRect(d.Paddle2X, e.state.Paddle2Y, d.CanvasWidth-d.Paddle2X, d.PaddleHeight)
}

// crossedFace reports whether a ball edge moving from prev to cur crossed
// face this tick while the ball, interpolated to that moment, overlapped the
// paddle span [top, top+h].
func crossedFace(prev, cur, face, prevY, curY, top, h, r float64) bool {
	if prev == cur || (prev-face)*(cur-face) > 0 {
		return false
	}
	t := (prev - face) / (prev - cur)
	y := prevY + t*(curY-prevY)
	return y+r > top && y-r < top+h
}

// checkPaddles tests the left paddle, then the right one, and registers at
// most one contact per tick. The ball's path since (prevX, prevY) is swept so
// a fast ball cannot jump over a paddle between two ticks.
func (e *Engine) checkPaddles(d Dimensions, prevX, prevY float64) Collision {
	ball := core.CenteredRect(e.state.BallX, e.state.BallY, d.BallSize)
	increase := e.settings.BallSpeedIncrease
	r := d.BallSize

	leftFace := d.Paddle1X + d.PaddleWidth
	hitLeft := ball.Intersects(e.LeftHitZone()) ||
		crossedFace(prevX-r, e.state.BallX-r, leftFace, prevY, e.state.BallY, e.state.Paddle1Y, d.PaddleHeight, r)
	if e.state.BallVX < 0 && hitLeft {
		e.state.BallVX = -e.state.BallVX * increase
		e.state.BallX = leftFace + r
		e.burst(e.state.BallX, e.state.BallY, ColorPlayer)
		e.stats.PlayerHits++
		e.stats.Streak++
		e.stats.LongestStreak = max(e.stats.LongestStreak, e.stats.Streak)
		return Collision{Hit: true, Side: SidePlayer}
	}

	hitRight := ball.Intersects(e.RightHitZone()) ||
		crossedFace(prevX+r, e.state.BallX+r, d.Paddle2X, prevY, e.state.BallY, e.state.Paddle2Y, d.PaddleHeight, r)
	if e.state.BallVX > 0 && hitRight {
		e.state.BallVX = -e.state.BallVX * increase
		e.state.BallX = d.Paddle2X - d.BallSize
		e.burst(e.state.BallX, e.state.BallY, ColorOpponent)
		e.stats.OpponentHits++
		return Collision{Hit: true, Side: SideOpponent}
	}

	return Collision{}
}

func (e *Engine) checkScore(d Dimensions) Point {
	switch {
	case e.state.BallX < 0:
		e.state.OpponentScore++
		e.stats.Streak = 0
		e.ResetBall()
		return Point{Scored: true, Scorer: SideOpponent}
	case e.state.BallX > d.CanvasWidth:
		e.state.PlayerScore++
		e.ResetBall()
		return Point{Scored: true, Scorer: SidePlayer}
	}
	return Point{}
}

func (e *Engine) checkWin() GameEnd {
	win := e.settings.WinningScore
	var (
		winner Side
		points [][2]float64
		color  string
	)
	switch {
	case e.state.PlayerScore >= win:
		winner, points, color = SidePlayer, playerWinBursts, ColorPlayer
	case e.state.OpponentScore >= win:
		winner, points, color = SideOpponent, opponentWinBursts, ColorOpponentWin
	default:
		return GameEnd{}
	}

	e.state.GameOver = true
	e.state.Winner = winner
	for _, p := range points {
		e.burst(p[0]*e.scale, p[1]*e.scale, color)
	}
	return GameEnd{Over: true, Winner: winner}
}

func (e *Engine) burst(x, y float64, color string) {
	e.particles.Burst(x, y, color, particles.BurstCount,
		particles.BurstBaseSpeed*e.scale, particles.BurstLife)
}

// UpdateScale rescales every stored position and velocity by newScale/old.
func (e *Engine) UpdateScale(newScale float64) error {
	if !core.ValidScale(newScale) {
		return fmt.Errorf("pong: %w: %v", core.ErrInvalidScale, newScale)
	}
	ratio := newScale / e.scale
	e.scale = newScale

	e.state.BallX *= ratio
	e.state.BallY *= ratio
	e.state.BallVX *= ratio
	e.state.BallVY *= ratio
	e.state.Paddle1Y *= ratio
	e.state.Paddle2Y *= ratio
	e.particles.Rescale(ratio)
	return nil
}

// SetKeyState records a control press or release for the next Update.
func (e *Engine) SetKeyState(k Key, pressed bool) {
	switch k {
	case KeyW:
		e.keys.W = pressed
	case KeyS:
		e.keys.S = pressed
	case KeyUp:
		e.keys.Up = pressed
	case KeyDown:
		e.keys.Down = pressed
	}
}

// TouchPaddle positions a paddle directly from a touch point. The left half
// of the canvas drives player one; the right half drives player two only in
// two-player mode.
func (e *Engine) TouchPaddle(x, y float64, mode Mode) {
	d := e.ScaledDimensions()
	target := core.Clamp(y-d.PaddleHeight/2, 0, d.CanvasHeight-d.PaddleHeight)

	switch {
	case x < d.CanvasWidth/2:
		e.state.Paddle1Y = target
	case mode == TwoPlayer:
		e.state.Paddle2Y = target
	}
}

// ResetBall serves from the centre: x direction reversed, random y component.
func (e *Engine) ResetBall() {
	d := e.ScaledDimensions()
	speed := e.settings.BallSpeed * e.scale

	e.state.BallX = d.CanvasWidth / 2
	e.state.BallY = d.CanvasHeight / 2
	if e.state.BallVX > 0 {
		e.state.BallVX = -speed
	} else {
		e.state.BallVX = speed
	}
	e.state.BallVY = (e.rng.Float64() - 0.5) * speed
}

// ResetPaddles centres both paddles vertically.
func (e *Engine) ResetPaddles() {
	d := e.ScaledDimensions()
	y := d.CanvasHeight/2 - d.PaddleHeight/2
	e.state.Paddle1Y = y
	e.state.Paddle2Y = y
}

// ResetGame returns to the initial state: scores cleared, ball centred and
// moving (ballSpeed, ballSpeed), paddles centred, particles and keys cleared.
func (e *Engine) ResetGame() {
	d := e.ScaledDimensions()
	speed := e.settings.BallSpeed * e.scale

	e.state = State{
		BallX:  d.CanvasWidth / 2,
		BallY:  d.CanvasHeight / 2,
		BallVX: speed,
		BallVY: speed,
	}
	e.ResetPaddles()
	e.stats = Stats{}
	e.keys = Keys{}
	e.particles.Reset()
}

// State returns a copy of the simulation state.
func (e *Engine) State() State { return e.state }

// Stats returns the rally counters.
func (e *Engine) Stats() Stats { return e.stats }

// Particles returns a copy of the live particles.
func (e *Engine) Particles() []particles.Particle { return e.particles.Snapshot() }

// Keys returns the current control state.
func (e *Engine) Keys() Keys { return e.keys }

// Settings returns the resolved settings.
func (e *Engine) Settings() Settings { return e.settings }

// Scale returns the current scale factor.
func (e *Engine) Scale() float64 { return e.scale }
