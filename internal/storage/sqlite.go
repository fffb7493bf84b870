// Package storage provides SQLite-based persistence for finished games,
// player stats and unlocked achievements.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/progress"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Player    string
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameResult is one recorded game.
type GameResult struct {
	ID        int64
	Player    string
	Outcome   core.Outcome
	CreatedAt time.Time
}

// Unlocked pairs an achievement with the time it was earned.
type Unlocked struct {
	Achievement progress.Achievement
	UnlockedAt  time.Time
}

// LeaderboardEntry is one row of the player leaderboard.
type LeaderboardEntry struct {
	Player string
	Stats  progress.Stats
}

// Recorded is what RecordGame returns: the stored row ID, the player's
// updated stats and any achievements the game unlocked.
type Recorded struct {
	ID       int64
	Stats    progress.Stats
	Unlocked []progress.Achievement
}

// GameStats holds aggregated statistics for one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one Store; writers queue on a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			opponent_score INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			shared INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			lives INTEGER NOT NULL DEFAULT 0,
			bricks INTEGER NOT NULL DEFAULT 0,
			longest_rally INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			tick_rate INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON game_results(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_results_player ON game_results(player, id DESC);

		CREATE TABLE IF NOT EXISTS player_stats (
			player TEXT PRIMARY KEY,
			total_games INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			win_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			best_rally INTEGER NOT NULL DEFAULT 0,
			fastest_win_ms INTEGER NOT NULL DEFAULT 0,
			play_time_ms INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_player_stats_xp ON player_stats(xp DESC);

		CREATE TABLE IF NOT EXISTS achievements (
			player TEXT NOT NULL,
			achievement_id INTEGER NOT NULL,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, achievement_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and the string form sqlite returns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// RecordGame stores a finished game for player. Unless the outcome is a
// shared local game, the player's stats are updated and newly satisfied
// achievements are unlocked in the same transaction.
func (s *Store) RecordGame(player string, o core.Outcome) (Recorded, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Recorded{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO game_results
		 (player, game_id, mode, score, opponent_score, won, shared, level, lives,
		  bricks, longest_rally, xp, ticks, tick_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player, o.GameID, o.Mode, o.Score, o.OpponentScore, o.Won, o.Shared, o.Level, o.Lives,
		o.BricksDestroyed, o.LongestRally, o.XP, o.Ticks, o.TickRate,
	)
	if err != nil {
		return Recorded{}, fmt.Errorf("storage: cannot save result: %w", err)
	}

	rec := Recorded{}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return Recorded{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	before, err := loadStats(tx.QueryRow(statsQuery+" WHERE player = ?", player))
	if err != nil {
		return Recorded{}, err
	}
	rec.Stats = before.Stats
	if o.Shared {
		if err := tx.Commit(); err != nil {
			return Recorded{}, fmt.Errorf("storage: cannot commit: %w", err)
		}
		return rec, nil
	}

	after := before.Stats.Apply(o)
	_, err = tx.Exec(
		`INSERT INTO player_stats
		 (player, total_games, wins, losses, win_streak, best_streak, best_rally,
		  fastest_win_ms, play_time_ms, xp, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		  total_games = excluded.total_games, wins = excluded.wins, losses = excluded.losses,
		  win_streak = excluded.win_streak, best_streak = excluded.best_streak,
		  best_rally = excluded.best_rally, fastest_win_ms = excluded.fastest_win_ms,
		  play_time_ms = excluded.play_time_ms, xp = excluded.xp,
		  updated_at = CURRENT_TIMESTAMP`,
		player, after.TotalGames, after.Wins, after.Losses, after.WinStreak, after.BestStreak,
		after.BestRally, after.FastestWin.Milliseconds(), after.PlayTime.Milliseconds(), after.XP,
	)
	if err != nil {
		return Recorded{}, fmt.Errorf("storage: cannot update stats: %w", err)
	}
	rec.Stats = after

	have, err := unlockedIDs(tx, player)
	if err != nil {
		return Recorded{}, err
	}
	for _, a := range progress.NewlyUnlocked(after, have) {
		if _, err := tx.Exec(
			"INSERT INTO achievements (player, achievement_id) VALUES (?, ?)",
			player, a.ID,
		); err != nil {
			return Recorded{}, fmt.Errorf("storage: cannot unlock achievement %d: %w", a.ID, err)
		}
		rec.Unlocked = append(rec.Unlocked, a)
	}

	if err := tx.Commit(); err != nil {
		return Recorded{}, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return rec, nil
}

func unlockedIDs(tx *sql.Tx, player string) (map[int]bool, error) {
	rows, err := tx.Query("SELECT achievement_id FROM achievements WHERE player = ?", player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	have := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		have[id] = true
	}
	return have, rows.Err()
}

const statsQuery = `SELECT player, total_games, wins, losses, win_streak, best_streak,
	best_rally, fastest_win_ms, play_time_ms, xp FROM player_stats`

// loadStats scans one player_stats row. A missing row yields zero stats.
func loadStats(row rowScanner) (LeaderboardEntry, error) {
	var e LeaderboardEntry
	var fastest, played int64
	err := row.Scan(&e.Player, &e.Stats.TotalGames, &e.Stats.Wins, &e.Stats.Losses,
		&e.Stats.WinStreak, &e.Stats.BestStreak, &e.Stats.BestRally, &fastest, &played, &e.Stats.XP)
	if errors.Is(err, sql.ErrNoRows) {
		return LeaderboardEntry{}, nil
	}
	if err != nil {
		return LeaderboardEntry{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	e.Stats.FastestWin = time.Duration(fastest) * time.Millisecond
	e.Stats.PlayTime = time.Duration(played) * time.Millisecond
	return e, nil
}

// PlayerStats returns the cumulative stats for player, zero if unknown.
func (s *Store) PlayerStats(player string) (progress.Stats, error) {
	e, err := loadStats(s.db.QueryRow(statsQuery+" WHERE player = ?", player))
	return e.Stats, err
}

// Leaderboard returns players ordered by XP, then wins.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(statsQuery+" ORDER BY xp DESC, wins DESC, player LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		e, err := loadStats(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Achievements returns the achievements player has unlocked, in the order
// they were earned.
func (s *Store) Achievements(player string) ([]Unlocked, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id, unlocked_at FROM achievements
		 WHERE player = ? ORDER BY unlocked_at, achievement_id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var out []Unlocked
	for rows.Next() {
		var id int
		var at any
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a, ok := progress.ByID(id)
		if !ok {
			continue
		}
		out = append(out, Unlocked{Achievement: a, UnlockedAt: parseTime(at)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, game_id, score, created_at
		 FROM game_results
		 WHERE game_id = ?
		 ORDER BY score DESC, id
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM game_results WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// History returns the most recent games played by player, newest first.
func (s *Store) History(player string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, game_id, mode, score, opponent_score, won, shared, level, lives,
		        bricks, longest_rally, xp, ticks, tick_rate, created_at
		 FROM game_results
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var createdAt any
		o := &r.Outcome
		if err := rows.Scan(&r.ID, &r.Player, &o.GameID, &o.Mode, &o.Score, &o.OpponentScore,
			&o.Won, &o.Shared, &o.Level, &o.Lives, &o.BricksDestroyed, &o.LongestRally,
			&o.XP, &o.Ticks, &o.TickRate, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearScores deletes all recorded results for the given game. Player stats
// and achievements are kept.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM game_results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM game_results
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
