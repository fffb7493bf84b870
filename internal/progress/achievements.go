package progress

import "time"

// Achievement is a one-time unlock with a numeric progress target.
type Achievement struct {
	ID          int
	Name        string
	Description string
	Max         int
	progress    func(Stats) int
}

// Progress returns how far s is toward the achievement, capped at Max.
func (a Achievement) Progress(s Stats) int {
	return min(a.progress(s), a.Max)
}

// Unlocked reports whether s satisfies the achievement.
func (a Achievement) Unlocked(s Stats) bool {
	return a.progress(s) >= a.Max
}

func boolProgress(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// Achievements lists every achievement in display order.
var Achievements = []Achievement{
	{
		ID: 1, Name: "First Victory", Description: "Win your first game", Max: 1,
		progress: func(s Stats) int { return s.Wins },
	},
	{
		ID: 2, Name: "Speed Demon", Description: "Win a game in under 60 seconds", Max: 1,
		progress: func(s Stats) int {
			return boolProgress(s.FastestWin > 0 && s.FastestWin < time.Minute)
		},
	},
	{
		ID: 3, Name: "Sharpshooter", Description: "Score 10 consecutive hits", Max: 10,
		progress: func(s Stats) int { return s.BestRally },
	},
	{
		ID: 4, Name: "Rising Star", Description: "Reach Pro rank", Max: 1,
		progress: func(s Stats) int { return boolProgress(s.Rank() >= Pro) },
	},
	{
		ID: 5, Name: "Unstoppable", Description: "Win 10 games in a row", Max: 10,
		progress: func(s Stats) int { return s.BestStreak },
	},
	{
		ID: 6, Name: "Marathon Player", Description: "Play for 2 hours", Max: 120,
		progress: func(s Stats) int { return int(s.PlayTime / time.Minute) },
	},
}

// ByID looks up an achievement.
func ByID(id int) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// NewlyUnlocked returns achievements satisfied by after that were not
// already in unlocked.
func NewlyUnlocked(after Stats, unlocked map[int]bool) []Achievement {
	var out []Achievement
	for _, a := range Achievements {
		if !unlocked[a.ID] && a.Unlocked(after) {
			out = append(out, a)
		}
	}
	return out
}
