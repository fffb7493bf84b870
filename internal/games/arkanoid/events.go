package arkanoid

// Event is something the host should react to, returned from Update in the
// order it happened. The set of variants is closed.
type Event interface {
	event()
}

// ScoreChanged is emitted when a brick is destroyed.
type ScoreChanged struct {
	Score int
}

// LivesChanged is emitted when the ball falls past the paddle.
type LivesChanged struct {
	Lives int
}

// LevelChanged is emitted on the first Update after NextLevel.
type LevelChanged struct {
	Level int
}

// GameOver is emitted once, on the tick the last life is lost.
type GameOver struct {
	Score int
	Level int
}

// LevelComplete is emitted once, on the tick the last brick is destroyed.
type LevelComplete struct {
	Level int
	Score int
	Lives int
}

func (ScoreChanged) event()  {}
func (LivesChanged) event()  {}
func (LevelChanged) event()  {}
func (GameOver) event()      {}
func (LevelComplete) event() {}
