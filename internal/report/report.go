// Package report posts finished games to a remote arcade API.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL   = "ARCADE_API_URL"
	EnvToken = "ARCADE_API_TOKEN"
)

// ErrRejected is returned when the server answers with a non-2xx status or
// a response whose success flag is false.
var ErrRejected = errors.New("report: result rejected")

// Config holds the endpoint and credentials.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Enabled reports whether a base URL is configured.
func (c Config) Enabled() bool {
	return c.BaseURL != ""
}

// ConfigFromEnv loads the given .env files (missing files are skipped) and
// reads the reporter settings from the environment. Variables already set
// in the environment win over the files. A file that exists but cannot be
// parsed is logged and skipped; a nil logger discards the warning.
func ConfigFromEnv(logger *log.Logger, files ...string) Config {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn("cannot load env file", "path", f, "error", err)
		}
	}
	return Config{
		BaseURL: strings.TrimRight(os.Getenv(EnvURL), "/"),
		Token:   os.Getenv(EnvToken),
		Timeout: 5 * time.Second,
	}
}

// UserStats mirrors the stats block returned by the server.
type UserStats struct {
	TotalGames    int    `json:"total_games"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	WinStreak     int    `json:"win_streak"`
	BestStreak    int    `json:"best_streak"`
	Level         int    `json:"level"`
	Rank          string `json:"rank"`
	TotalPlayTime int    `json:"total_play_time"`
	XP            int    `json:"xp"`
}

// Response is the server reply to a score submission.
type Response struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	NewAchievements []json.RawMessage `json:"newAchievements"`
	UserStats       *UserStats        `json:"userStats"`
}

type pongScore struct {
	Score         int    `json:"score"`
	OpponentScore int    `json:"opponentScore"`
	Winner        string `json:"winner"`
	XPEarned      int    `json:"xpEarned"`
	Duration      int    `json:"duration"`
	IsPerfectGame bool   `json:"isPerfectGame"`
}

type arkanoidScore struct {
	Score             int `json:"score"`
	LevelReached      int `json:"levelReached"`
	XPEarned          int `json:"xpEarned"`
	Duration          int `json:"duration"`
	BlocksDestroyed   int `json:"blocksDestroyed"`
	PowerUpsCollected int `json:"powerUpsCollected"`
}

// Client submits outcomes. The zero value is not usable; call New.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
}

// New creates a client. A nil logger discards output.
func New(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("report"),
	}
}

// request builds the endpoint URL and JSON body for an outcome.
func (c *Client) request(o core.Outcome) (string, any, error) {
	seconds := int(o.Duration() / time.Second)

	switch {
	case strings.HasPrefix(o.GameID, "pong"):
		winner := "opponent"
		if o.Won {
			winner = "player"
		}
		mode := o.Mode
		if mode == "" {
			mode = "one-player"
		}
		endpoint := c.cfg.BaseURL + "/pong/score?" + url.Values{"mode": {mode}}.Encode()
		return endpoint, pongScore{
			Score:         o.Score,
			OpponentScore: o.OpponentScore,
			Winner:        winner,
			XPEarned:      o.XP,
			Duration:      seconds,
			IsPerfectGame: o.Won && o.OpponentScore == 0,
		}, nil

	case o.GameID == "arkanoid":
		return c.cfg.BaseURL + "/arkanoid/score", arkanoidScore{
			Score:           o.Score,
			LevelReached:    o.Level,
			XPEarned:        o.XP,
			Duration:        seconds,
			BlocksDestroyed: o.BricksDestroyed,
		}, nil
	}
	return "", nil, fmt.Errorf("report: unsupported game %q", o.GameID)
}

// Submit posts o and decodes the server response.
func (c *Client) Submit(ctx context.Context, o core.Outcome) (Response, error) {
	endpoint, payload, err := c.request(o)
	if err != nil {
		return Response{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("report: cannot encode result: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("report: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.logger.Debug("submitting result", "game", o.GameID, "score", o.Score, "url", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("report: cannot reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("report: cannot decode response: %w", err)
	}
	if !out.Success {
		return out, fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}

	c.logger.Info("result accepted", "game", o.GameID, "achievements", len(out.NewAchievements))
	return out, nil
}
