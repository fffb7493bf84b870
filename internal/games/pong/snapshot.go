package pong

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Snapshot is a quantised copy of the engine state used to compare runs.
// Floats are stored in thousandths so equal runs produce equal snapshots.
type Snapshot struct {
	Tick          int
	BallX, BallY  int
	BallVX        int
	BallVY        int
	Paddle1Y      int
	Paddle2Y      int
	PlayerScore   int
	OpponentScore int
	GameOver      bool
	Winner        Side
	Particles     int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:          e.stats.Ticks,
		BallX:         milli(e.state.BallX),
		BallY:         milli(e.state.BallY),
		BallVX:        milli(e.state.BallVX),
		BallVY:        milli(e.state.BallVY),
		Paddle1Y:      milli(e.state.Paddle1Y),
		Paddle2Y:      milli(e.state.Paddle2Y),
		PlayerScore:   e.state.PlayerScore,
		OpponentScore: e.state.OpponentScore,
		GameOver:      e.state.GameOver,
		Winner:        e.state.Winner,
		Particles:     e.particles.Len(),
	}
}

// Hash returns a stable digest of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%+v", s)
	return h.Sum64()
}
