package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func pongWin(score, opp int, seconds int) core.Outcome {
	return core.Outcome{
		GameID:        "pong",
		Mode:          "one-player",
		Score:         score,
		OpponentScore: opp,
		Won:           true,
		LongestRally:  3,
		XP:            100,
		Ticks:         seconds * 60,
		TickRate:      60,
	}
}

func pongLoss(score int) core.Outcome {
	o := pongWin(score, 5, 90)
	o.Won = false
	o.XP = 25
	return o
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordGame("ada", pongWin(5, 2, 30)); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("pong")
	if err != nil || high != 5 {
		t.Errorf("HighScore() = %d, %v; expected 5", high, err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []struct {
		player string
		o      core.Outcome
	}{
		{"ada", core.Outcome{GameID: "arkanoid", Score: 100}},
		{"bob", core.Outcome{GameID: "arkanoid", Score: 50}},
		{"ada", core.Outcome{GameID: "arkanoid", Score: 200}},
		{"bob", pongWin(5, 1, 40)},
	} {
		if _, err := store.RecordGame(rec.player, rec.o); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	scores, err := store.TopScores("arkanoid", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, expect := range []int{200, 100, 50} {
		if scores[i].Score != expect {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, expect)
		}
	}
	if scores[0].Player != "ada" || scores[0].CreatedAt.IsZero() {
		t.Errorf("top entry = %+v", scores[0])
	}

	limited, err := store.TopScores("arkanoid", 2)
	if err != nil || len(limited) != 2 {
		t.Errorf("TopScores(limit 2) returned %d entries, %v", len(limited), err)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("arkanoid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}
}

func TestRecordGameUpdatesStats(t *testing.T) {
	store := openTestStore(t)

	games := []core.Outcome{pongWin(5, 3, 90), pongWin(5, 4, 45), pongLoss(2)}
	var last Recorded
	for _, o := range games {
		rec, err := store.RecordGame("ada", o)
		if err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
		last = rec
	}

	stats, err := store.PlayerStats("ada")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats != last.Stats {
		t.Errorf("stored stats %+v differ from returned %+v", stats, last.Stats)
	}
	if stats.TotalGames != 3 || stats.Wins != 2 || stats.Losses != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.WinStreak != 0 || stats.BestStreak != 2 {
		t.Errorf("streaks = %d/%d, expected 0/2", stats.WinStreak, stats.BestStreak)
	}
	if stats.FastestWin != 45*time.Second {
		t.Errorf("FastestWin = %v", stats.FastestWin)
	}
	if stats.PlayTime != 225*time.Second {
		t.Errorf("PlayTime = %v", stats.PlayTime)
	}
	if stats.XP != 225 {
		t.Errorf("XP = %d, expected 225", stats.XP)
	}
}

func TestRecordGameConcurrent(t *testing.T) {
	store := openTestStore(t)

	const sessions = 40
	var wg sync.WaitGroup
	errs := make(chan error, sessions)
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			player := "ada"
			if i%2 == 1 {
				player = "bob"
			}
			if _, err := store.RecordGame(player, pongWin(5, 1, 30)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("RecordGame() failed: %v", err)
	}

	for _, player := range []string{"ada", "bob"} {
		stats, err := store.PlayerStats(player)
		if err != nil {
			t.Fatalf("PlayerStats() failed: %v", err)
		}
		if stats.TotalGames != sessions/2 || stats.Wins != sessions/2 {
			t.Errorf("%s stats = %+v, expected %d games", player, stats, sessions/2)
		}
	}
	if scores, _ := store.TopScores("pong", 100); len(scores) != sessions {
		t.Errorf("stored %d results, expected %d", len(scores), sessions)
	}
}

func TestPlayerStatsUnknown(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.PlayerStats("nobody")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats.TotalGames != 0 || stats.XP != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestSharedGameSkipsStats(t *testing.T) {
	store := openTestStore(t)

	o := pongWin(5, 0, 30)
	o.Mode = "two-player"
	o.Shared = true
	rec, err := store.RecordGame("ada", o)
	if err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	if rec.Stats.TotalGames != 0 || len(rec.Unlocked) != 0 {
		t.Errorf("shared game touched stats: %+v", rec)
	}

	history, err := store.History("ada", 10)
	if err != nil || len(history) != 1 || !history[0].Outcome.Shared {
		t.Errorf("History() = %+v, %v", history, err)
	}
}

func TestAchievementsUnlockOnce(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.RecordGame("ada", pongWin(5, 0, 30))
	if err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	names := map[string]bool{}
	for _, a := range rec.Unlocked {
		names[a.Name] = true
	}
	if len(rec.Unlocked) != 2 || !names["First Victory"] || !names["Speed Demon"] {
		t.Errorf("first win unlocked %v", names)
	}

	rec, err = store.RecordGame("ada", pongWin(5, 1, 20))
	if err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	if len(rec.Unlocked) != 0 {
		t.Errorf("second win unlocked %d achievements again", len(rec.Unlocked))
	}

	unlocked, err := store.Achievements("ada")
	if err != nil {
		t.Fatalf("Achievements() failed: %v", err)
	}
	if len(unlocked) != 2 || unlocked[0].UnlockedAt.IsZero() {
		t.Errorf("Achievements() = %+v", unlocked)
	}

	other, err := store.Achievements("bob")
	if err != nil || len(other) != 0 {
		t.Errorf("Achievements(bob) = %+v, %v", other, err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 3; i++ {
		o := core.Outcome{GameID: "arkanoid", Mode: "campaign", Score: i * 100, Level: i, BricksDestroyed: i * 10}
		if _, err := store.RecordGame("ada", o); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	history, err := store.History("ada", 2)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History() returned %d rows", len(history))
	}
	if o := history[0].Outcome; o.Score != 300 || o.Level != 3 || o.BricksDestroyed != 30 || o.Mode != "campaign" {
		t.Errorf("newest = %+v", o)
	}
	if history[1].Outcome.Score != 200 {
		t.Errorf("second = %+v", history[1].Outcome)
	}
}

func TestLeaderboardOrder(t *testing.T) {
	store := openTestStore(t)

	record := func(player string, o core.Outcome) {
		t.Helper()
		if _, err := store.RecordGame(player, o); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}
	record("ada", pongWin(5, 0, 30))
	record("bob", pongLoss(1))
	record("cy", pongWin(5, 0, 30))
	record("cy", pongWin(5, 0, 30))

	board, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	var got []string
	for _, e := range board {
		got = append(got, e.Player)
	}
	expect := []string{"cy", "ada", "bob"}
	if len(got) != len(expect) {
		t.Fatalf("Leaderboard() = %v, expected %v", got, expect)
	}
	for i := range expect {
		if got[i] != expect[i] {
			t.Errorf("Leaderboard() = %v, expected %v", got, expect)
			break
		}
	}
	if board[0].Stats.WinRate() != 100 {
		t.Errorf("cy win rate = %v", board[0].Stats.WinRate())
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordGame("ada", pongWin(5, 2, 30)); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	if _, err := store.RecordGame("ada", core.Outcome{GameID: "arkanoid", Score: 300}); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}

	if err := store.ClearScores("pong"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("pong", 10); len(scores) != 0 {
		t.Errorf("pong scores left: %d", len(scores))
	}
	if scores, _ := store.TopScores("arkanoid", 10); len(scores) != 1 {
		t.Errorf("arkanoid scores = %d, expected 1", len(scores))
	}
	if stats, _ := store.PlayerStats("ada"); stats.TotalGames != 2 {
		t.Errorf("ClearScores should keep stats, got %+v", stats)
	}
}

func TestGetAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 300} {
		if _, err := store.RecordGame("ada", core.Outcome{GameID: "arkanoid", Score: score}); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	gs := all["arkanoid"]
	if gs == nil {
		t.Fatal("missing arkanoid stats")
	}
	if gs.GamesCount != 2 || gs.HighScore != 300 || gs.AvgScore != 200 || gs.TotalScore != 400 {
		t.Errorf("stats = %+v", gs)
	}
	if _, ok := all["pong"]; ok {
		t.Error("unplayed game should be absent")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "test.db")); err != nil {
		t.Errorf("expanded database not created: %v", err)
	}
}
