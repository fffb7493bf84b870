// Package arkanoid implements a brick-breaking simulation across levels and
// its terminal adapter. The Engine is pure and reports what happened in
// each tick as a list of events.
package arkanoid

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/particles"
)

// State is the mutable simulation state. Positions are in scaled canvas units.
type State struct {
	PaddleX        float64
	BallX, BallY   float64
	BallVX, BallVY float64
	Score          int
	Lives          int
	Level          int
	Phase          Phase
}

// Stats are counters for the current game.
type Stats struct {
	Ticks           int
	BricksDestroyed int
	LivesLost       int
}

// Engine simulates one Arkanoid session.
type Engine struct {
	settings  Settings
	scale     float64
	state     State
	stats     Stats
	bricks    []Brick
	keys      Keys
	pending   []Event
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

// New validates settings and scale and starts level 1 with a full grid.
func New(settings Settings, scale float64, opts ...Option) (*Engine, error) {
	resolved, err := settings.Resolve()
	if err != nil {
		return nil, err
	}
	if !core.ValidScale(scale) {
		return nil, fmt.Errorf("arkanoid: %w: %v", core.ErrInvalidScale, scale)
	}

	e := &Engine{settings: resolved, scale: scale}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.particles = particles.New(e.rng)
	e.ResetGame(true)
	return e, nil
}

// ScaledDimensions returns the settings multiplied by the current scale.
func (e *Engine) ScaledDimensions() Dimensions {
	s := e.scale
	h := e.settings.CanvasHeight * s
	ph := e.settings.PaddleHeight * s
	return Dimensions{
		CanvasWidth:  e.settings.CanvasWidth * s,
		CanvasHeight: h,
		PaddleWidth:  e.settings.PaddleWidth * s,
		PaddleHeight: ph,
		PaddleY:      h - ph - paddleLift*s,
		BallSize:     e.settings.BallSize * s,
	}
}

// Update advances one tick and returns the events it produced. Outside the
// playing phase only particles move.
func (e *Engine) Update() []Event {
	events := e.pending
	e.pending = nil

	if e.state.Phase != PhasePlaying {
		e.particles.Step()
		return events
	}

	d := e.ScaledDimensions()
	e.stats.Ticks++

	e.movePaddle(d)
	e.state.BallX += e.state.BallVX
	e.state.BallY += e.state.BallVY
	e.bounceWalls(d)
	e.checkPaddle(d)

	if e.state.BallY > d.CanvasHeight {
		events = append(events, e.loseLife()...)
	}

	if e.state.Phase == PhasePlaying {
		if ev, ok := e.checkBricks(d); ok {
			events = append(events, ev)
		}
		if remaining(e.bricks) == 0 {
			e.state.Phase = PhaseLevelComplete
			events = append(events, LevelComplete{
				Level: e.state.Level,
				Score: e.state.Score,
				Lives: e.state.Lives,
			})
		}
	}

	e.particles.Step()
	return events
}

func (e *Engine) movePaddle(d Dimensions) {
	step := paddleSpeed * e.scale
	if e.keys.Left {
		e.state.PaddleX -= step
	}
	if e.keys.Right {
		e.state.PaddleX += step
	}
	e.state.PaddleX = core.Clamp(e.state.PaddleX, 0, d.CanvasWidth-d.PaddleWidth)
}

func (e *Engine) bounceWalls(d Dimensions) {
	r := d.BallSize
	switch {
	case e.state.BallX <= r:
		e.state.BallX = r
		e.state.BallVX = math.Abs(e.state.BallVX)
	case e.state.BallX >= d.CanvasWidth-r:
		e.state.BallX = d.CanvasWidth - r
		e.state.BallVX = -math.Abs(e.state.BallVX)
	}
	if e.state.BallY <= r {
		e.state.BallY = r
		e.state.BallVY = math.Abs(e.state.BallVY)
	}
}

// checkPaddle bounces a descending ball off the paddle. The new horizontal
// speed depends only on where along the paddle the ball landed.
func (e *Engine) checkPaddle(d Dimensions) {
	r := d.BallSize
	x, y := e.state.BallX, e.state.BallY
	left, right := e.state.PaddleX, e.state.PaddleX+d.PaddleWidth

	if e.state.BallVY <= 0 ||
		y+r < d.PaddleY || y-r > d.PaddleY+d.PaddleHeight ||
		x < left || x > right {
		return
	}

	e.state.BallVY = -math.Abs(e.state.BallVY)
	e.state.BallY = d.PaddleY - r
	e.state.BallVX = (x - (left + d.PaddleWidth/2)) * deflection
}

func (e *Engine) loseLife() []Event {
	e.state.Lives--
	e.stats.LivesLost++
	events := []Event{LivesChanged{Lives: e.state.Lives}}

	if e.state.Lives <= 0 {
		e.state.Lives = 0
		e.state.Phase = PhaseGameOver
		return append(events, GameOver{Score: e.state.Score, Level: e.state.Level})
	}
	e.resetBallAndPaddle()
	return events
}

// checkBricks destroys the first live brick the ball overlaps, in row-major
// order, and reflects the ball off its shallowest face.
func (e *Engine) checkBricks(d Dimensions) (Event, bool) {
	r := d.BallSize
	ball := core.CenteredRect(e.state.BallX, e.state.BallY, r)

	for i := range e.bricks {
		b := &e.bricks[i]
		if b.Destroyed || !ball.Intersects(b.Rect) {
			continue
		}

		b.Destroyed = true
		e.state.Score += b.Points
		e.stats.BricksDestroyed++
		e.burst(e.state.BallX, e.state.BallY, b.Color.Glow)

		switch core.PenetrationOf(ball, b.Rect).Shallowest() {
		case core.FaceTop:
			e.state.BallVY = -e.state.BallVY
			e.state.BallY = b.Y - r
		case core.FaceBottom:
			e.state.BallVY = -e.state.BallVY
			e.state.BallY = b.Bottom() + r
		case core.FaceLeft:
			e.state.BallVX = -e.state.BallVX
			e.state.BallX = b.X - r
		case core.FaceRight:
			e.state.BallVX = -e.state.BallVX
			e.state.BallX = b.Right() + r
		}
		return ScoreChanged{Score: e.state.Score}, true
	}
	return nil, false
}

func (e *Engine) burst(x, y float64, color string) {
	n := particles.BurstCount
	if e.settings.Compact {
		n = particles.CompactCount
	}
	e.particles.Burst(x, y, color, n, particles.BurstBaseSpeed*e.scale, particles.BurstLife)
}

// NextLevel advances the level counter and starts it with a fresh grid.
// Score and lives carry over. LevelChanged is reported by the next Update.
func (e *Engine) NextLevel() {
	e.state.Level++
	e.pending = append(e.pending, LevelChanged{Level: e.state.Level})
	e.ResetGame(false)
}

// ResetGame rebuilds the grid and re-serves. A new game also clears score,
// restores lives and returns to level 1; so does continuing with no lives left.
func (e *Engine) ResetGame(isNewGame bool) {
	if isNewGame || e.state.Lives <= 0 {
		e.state.Score = 0
		e.state.Lives = e.settings.InitialLives
		e.state.Level = 1
		e.stats = Stats{}
		e.pending = nil
	}

	d := e.ScaledDimensions()
	e.bricks = buildGrid(d.CanvasWidth, e.scale, e.settings.Palette)
	e.particles.Reset()
	e.keys = Keys{}
	e.state.Phase = PhasePlaying
	e.resetBallAndPaddle()
}

// resetBallAndPaddle centres the paddle and serves upward from above it
// with a random horizontal direction.
func (e *Engine) resetBallAndPaddle() {
	d := e.ScaledDimensions()
	speed := serveSpeed * e.scale

	e.state.PaddleX = d.CanvasWidth/2 - d.PaddleWidth/2
	e.state.BallX = d.CanvasWidth / 2
	e.state.BallY = d.CanvasHeight - d.PaddleHeight - d.BallSize - serveLift*e.scale
	e.state.BallVX = speed
	if e.rng.Float64() <= 0.5 {
		e.state.BallVX = -speed
	}
	e.state.BallVY = -speed
}

// UpdateScale rescales positions, velocities, bricks and particles by
// newScale/old.
func (e *Engine) UpdateScale(newScale float64) error {
	if !core.ValidScale(newScale) {
		return fmt.Errorf("arkanoid: %w: %v", core.ErrInvalidScale, newScale)
	}
	ratio := newScale / e.scale
	e.scale = newScale

	e.state.PaddleX *= ratio
	e.state.BallX *= ratio
	e.state.BallY *= ratio
	e.state.BallVX *= ratio
	e.state.BallVY *= ratio
	for i := range e.bricks {
		e.bricks[i].Rect = e.bricks[i].Rect.Scale(ratio)
	}
	e.particles.Rescale(ratio)
	return nil
}

// SetKeyState records a control press or release for the next Update.
func (e *Engine) SetKeyState(k Key, pressed bool) {
	switch k {
	case KeyLeft:
		e.keys.Left = pressed
	case KeyRight:
		e.keys.Right = pressed
	}
}

// TouchPaddle centres the paddle on canvas x, clamped to the canvas.
func (e *Engine) TouchPaddle(x float64) {
	d := e.ScaledDimensions()
	e.state.PaddleX = core.Clamp(x-d.PaddleWidth/2, 0, d.CanvasWidth-d.PaddleWidth)
}

// State returns a copy of the simulation state.
func (e *Engine) State() State { return e.state }

// Stats returns the counters for the current game.
func (e *Engine) Stats() Stats { return e.stats }

// Bricks returns a copy of the grid.
func (e *Engine) Bricks() []Brick { return append([]Brick(nil), e.bricks...) }

// Remaining returns the number of live bricks.
func (e *Engine) Remaining() int { return remaining(e.bricks) }

// Particles returns a copy of the live particles.
func (e *Engine) Particles() []particles.Particle { return e.particles.Snapshot() }

// Keys returns the current control state.
func (e *Engine) Keys() Keys { return e.keys }

// Settings returns the resolved settings.
func (e *Engine) Settings() Settings {
	s := e.settings
	s.Palette = append([]BrickColor(nil), s.Palette...)
	return s
}

// Scale returns the current scale factor.
func (e *Engine) Scale() float64 { return e.scale }
