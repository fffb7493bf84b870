package progress

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func TestPongXP(t *testing.T) {
	tests := []struct {
		name     string
		won      bool
		score    int
		opp      int
		expected int
	}{
		{"perfect win", true, 5, 0, 100 + 2 + 25},
		{"close win", true, 5, 4, 100 + 2 + 5},
		{"loss", false, 3, 5, 25 + 0},
		{"loss with points", false, 4, 5, 25 + 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PongXP(tc.won, tc.score, tc.opp); got != tc.expected {
				t.Errorf("PongXP() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestArkanoidXP(t *testing.T) {
	if got := ArkanoidLevelXP(2, 1250, 3); got != 200+125+75 {
		t.Errorf("ArkanoidLevelXP() = %d", got)
	}
	if got := ArkanoidGameOverXP(3, 999); got != 150+49 {
		t.Errorf("ArkanoidGameOverXP() = %d", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp       int
		expected int
	}{
		{0, 1},
		{349, 1},
		{350, 2},  // XPForLevel(2)
		{549, 2},
		{550, 3},  // XPForLevel(3)
		{10000, 50},
	}

	for _, tc := range tests {
		if got := LevelFor(tc.xp).Level; got != tc.expected {
			t.Errorf("LevelFor(%d) = %d, expected %d", tc.xp, got, tc.expected)
		}
	}

	lv := LevelFor(450)
	if lv.CurrentXP != 100 || lv.NextLevelXP != 200 || lv.Progress != 0.5 {
		t.Errorf("LevelFor(450) = %+v", lv)
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		level    int
		expected Rank
	}{
		{1, Novice},
		{5, Amateur},
		{10, Pro},
		{15, Expert},
		{20, Master},
		{99, Master},
	}
	for _, tc := range tests {
		if got := RankFor(tc.level); got != tc.expected {
			t.Errorf("RankFor(%d) = %s, expected %s", tc.level, got, tc.expected)
		}
	}
}

func TestStatsApply(t *testing.T) {
	win := core.Outcome{Won: true, XP: 120, Ticks: 1800, TickRate: 60, LongestRally: 4}
	loss := core.Outcome{Won: false, XP: 25, Ticks: 3600, TickRate: 60}

	var s Stats
	s = s.Apply(win)
	s = s.Apply(win)
	s = s.Apply(loss)
	s = s.Apply(win)

	if s.TotalGames != 4 || s.Wins != 3 || s.Losses != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.WinStreak != 1 || s.BestStreak != 2 {
		t.Errorf("streaks = %d/%d, expected 1/2", s.WinStreak, s.BestStreak)
	}
	if s.FastestWin != 30*time.Second {
		t.Errorf("FastestWin = %v", s.FastestWin)
	}
	if s.PlayTime != 150*time.Second {
		t.Errorf("PlayTime = %v", s.PlayTime)
	}
	if s.XP != 385 || s.BestRally != 4 {
		t.Errorf("XP/BestRally = %d/%d", s.XP, s.BestRally)
	}
	if s.WinRate() != 75 {
		t.Errorf("WinRate() = %v", s.WinRate())
	}
}

func TestNewlyUnlocked(t *testing.T) {
	s := Stats{}.Apply(core.Outcome{Won: true, Ticks: 600, TickRate: 60, LongestRally: 12})

	got := NewlyUnlocked(s, map[int]bool{})
	names := map[string]bool{}
	for _, a := range got {
		names[a.Name] = true
	}
	for _, want := range []string{"First Victory", "Speed Demon", "Sharpshooter"} {
		if !names[want] {
			t.Errorf("expected %q to unlock, got %v", want, names)
		}
	}
	if names["Unstoppable"] || names["Marathon Player"] {
		t.Errorf("unexpected unlocks: %v", names)
	}

	again := NewlyUnlocked(s, map[int]bool{1: true, 2: true, 3: true})
	if len(again) != 0 {
		t.Errorf("already unlocked achievements returned again: %v", again)
	}
}

func TestAchievementProgressCapped(t *testing.T) {
	a, ok := ByID(6)
	if !ok {
		t.Fatal("Marathon Player missing")
	}
	if got := a.Progress(Stats{PlayTime: 5 * time.Hour}); got != 120 {
		t.Errorf("Progress() = %d, expected 120", got)
	}
	if got := a.Progress(Stats{PlayTime: 30 * time.Minute}); got != 30 {
		t.Errorf("Progress() = %d, expected 30", got)
	}
}
