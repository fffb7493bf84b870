// Package particles implements the short-lived visual sparks both engines
// spawn on collisions and wins.
package particles

import (
	"math/rand"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Burst defaults shared by the engines.
const (
	BurstCount     = 12
	CompactCount   = 8
	BurstLife      = 40
	BurstBaseSpeed = 8.0
	RadiusBase     = 2.0
)

// Particle is a single spark. Life counts down one per Step.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Color   string
}

// Alpha returns the remaining life fraction used as draw opacity.
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// System owns a set of particles. The zero value is unusable; use New.
type System struct {
	rng   *rand.Rand
	items []Particle
}

// New creates an empty system drawing velocities from rng.
func New(rng *rand.Rand) *System {
	return &System{rng: rng}
}

// Burst spawns n particles at (x, y) with each velocity component drawn
// uniformly from [-speed/2, speed/2).
func (s *System) Burst(x, y float64, color string, n int, speed float64, life int) {
	for range n {
		s.items = append(s.items, Particle{
			X:       x,
			Y:       y,
			VX:      (s.rng.Float64() - 0.5) * speed,
			VY:      (s.rng.Float64() - 0.5) * speed,
			Life:    life,
			MaxLife: life,
			Color:   color,
		})
	}
}

// Step moves every particle, decrements its life and purges the expired.
func (s *System) Step() {
	alive := s.items[:0]
	for _, p := range s.items {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(s.items[len(alive):])
	s.items = alive
}

// Rescale multiplies every position and velocity by ratio.
func (s *System) Rescale(ratio float64) {
	for i := range s.items {
		s.items[i].X *= ratio
		s.items[i].Y *= ratio
		s.items[i].VX *= ratio
		s.items[i].VY *= ratio
	}
}

// Reset drops all particles.
func (s *System) Reset() {
	s.items = s.items[:0]
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.items)
}

// Snapshot returns a copy of the live particles.
func (s *System) Snapshot() []Particle {
	out := make([]Particle, len(s.items))
	copy(out, s.items)
	return out
}

// Draw renders each particle as a small disc faded by its remaining life.
func (s *System) Draw(dst core.Surface, scale float64) {
	for _, p := range s.items {
		dst.SetAlpha(p.Alpha())
		dst.FillCircle(p.X, p.Y, RadiusBase*scale, p.Color)
	}
	dst.SetAlpha(1)
}
