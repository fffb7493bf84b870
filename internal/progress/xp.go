// Package progress turns finished games into experience points, player
// levels, ranks and achievements.
package progress

// PongXP returns the experience earned by player one for a finished Pong game.
func PongXP(won bool, score, opponentScore int) int {
	if won {
		return 100 + score/2 + (score-opponentScore)*5
	}
	return 25 + score/4
}

// ArkanoidLevelXP returns the experience for clearing a level.
func ArkanoidLevelXP(level, score, lives int) int {
	return level*100 + score/10 + lives*25
}

// ArkanoidGameOverXP returns the consolation experience when the last life is lost.
func ArkanoidGameOverXP(level, score int) int {
	return level*50 + score/20
}

// XPForLevel returns the total experience needed to reach player level n.
func XPForLevel(n int) int {
	return n*150 + (n-1)*50
}

// Level describes where a total experience value sits on the level curve.
type Level struct {
	Level       int
	CurrentXP   int     // XP earned inside the current level
	NextLevelXP int     // XP span of the current level
	Progress    float64 // CurrentXP / NextLevelXP, capped at 1
}

// LevelFor walks the level curve for totalXP. Level 2 starts at
// XPForLevel(2), level 3 at XPForLevel(3), and so on.
func LevelFor(totalXP int) Level {
	level, floor := 1, 0
	next := XPForLevel(level + 1)
	for totalXP >= next {
		level++
		floor = next
		next = XPForLevel(level + 1)
	}

	span := next - floor
	current := totalXP - floor
	return Level{
		Level:       level,
		CurrentXP:   current,
		NextLevelXP: span,
		Progress:    min(float64(current)/float64(span), 1),
	}
}

// Rank is a coarse title derived from the player level.
type Rank int

const (
	Novice Rank = iota
	Amateur
	Pro
	Expert
	Master
)

// String returns the rank title.
func (r Rank) String() string {
	switch r {
	case Novice:
		return "Novice"
	case Amateur:
		return "Amateur"
	case Pro:
		return "Pro"
	case Expert:
		return "Expert"
	case Master:
		return "Master"
	default:
		return "Unknown"
	}
}

// RankFor maps a player level to a rank: five levels per rank, Master from 20.
func RankFor(level int) Rank {
	switch {
	case level >= 20:
		return Master
	case level >= 15:
		return Expert
	case level >= 10:
		return Pro
	case level >= 5:
		return Amateur
	default:
		return Novice
	}
}
