package progress

import (
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Stats are a player's cumulative counters across every game.
type Stats struct {
	TotalGames int
	Wins       int
	Losses     int
	WinStreak  int
	BestStreak int
	BestRally  int           // Most consecutive returns in one game
	FastestWin time.Duration // Zero until the first win
	PlayTime   time.Duration
	XP         int
}

// Level returns the player level for the accumulated XP.
func (s Stats) Level() int {
	return LevelFor(s.XP).Level
}

// Rank returns the rank for the current level.
func (s Stats) Rank() Rank {
	return RankFor(s.Level())
}

// WinRate returns wins as a percentage of games played.
func (s Stats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) * 100 / float64(s.TotalGames)
}

// Apply folds a finished game into the counters and returns the new value.
// Arkanoid games count as wins when at least one level was cleared.
func (s Stats) Apply(o core.Outcome) Stats {
	s.TotalGames++
	s.XP += o.XP
	s.PlayTime += o.Duration()
	s.BestRally = max(s.BestRally, o.LongestRally)

	if o.Won {
		s.Wins++
		s.WinStreak++
		s.BestStreak = max(s.BestStreak, s.WinStreak)
		if d := o.Duration(); d > 0 && (s.FastestWin == 0 || d < s.FastestWin) {
			s.FastestWin = d
		}
	} else {
		s.Losses++
		s.WinStreak = 0
	}
	return s
}
