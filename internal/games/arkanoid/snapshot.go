package arkanoid

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Snapshot is a quantised copy of the engine state used to compare runs.
type Snapshot struct {
	Tick         int
	PaddleX      int
	BallX, BallY int
	BallVX       int
	BallVY       int
	Score        int
	Lives        int
	Level        int
	Phase        Phase
	Destroyed    uint64 // Bit i set when brick i is gone
	Particles    int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	var destroyed uint64
	for i, b := range e.bricks {
		if b.Destroyed {
			destroyed |= 1 << i
		}
	}
	return Snapshot{
		Tick:      e.stats.Ticks,
		PaddleX:   milli(e.state.PaddleX),
		BallX:     milli(e.state.BallX),
		BallY:     milli(e.state.BallY),
		BallVX:    milli(e.state.BallVX),
		BallVY:    milli(e.state.BallVY),
		Score:     e.state.Score,
		Lives:     e.state.Lives,
		Level:     e.state.Level,
		Phase:     e.state.Phase,
		Destroyed: destroyed,
		Particles: e.particles.Len(),
	}
}

// Hash returns a stable digest of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%+v", s)
	return h.Sum64()
}
