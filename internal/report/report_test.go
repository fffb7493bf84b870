package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

type captured struct {
	path string
	mode string
	auth string
	body map[string]any
}

func newServer(t *testing.T, status int, reply string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.mode = r.URL.Query().Get("mode")
		got.auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got.body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okReply = `{"success":true,"message":"saved","newAchievements":[{"id":1}],
	"userStats":{"total_games":4,"wins":3,"level":2,"rank":"NOVICE","xp":420}}`

func TestSubmitPong(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, okReply, &got)
	c := New(Config{BaseURL: srv.URL, Token: "secret"}, nil)

	resp, err := c.Submit(context.Background(), core.Outcome{
		GameID:        "pong",
		Mode:          "one-player",
		Score:         5,
		OpponentScore: 0,
		Won:           true,
		XP:            140,
		Ticks:         1800,
		TickRate:      60,
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if got.path != "/pong/score" || got.mode != "one-player" {
		t.Errorf("request went to %s?mode=%s", got.path, got.mode)
	}
	if got.auth != "Bearer secret" {
		t.Errorf("Authorization = %q", got.auth)
	}

	expect := map[string]any{
		"score":         5.0,
		"opponentScore": 0.0,
		"winner":        "player",
		"xpEarned":      140.0,
		"duration":      30.0,
		"isPerfectGame": true,
	}
	for k, v := range expect {
		if got.body[k] != v {
			t.Errorf("body[%s] = %v, expected %v", k, got.body[k], v)
		}
	}

	if len(resp.NewAchievements) != 1 || resp.UserStats == nil || resp.UserStats.XP != 420 {
		t.Errorf("response = %+v", resp)
	}
}

func TestSubmitPongLossAndMode(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, okReply, &got)
	c := New(Config{BaseURL: srv.URL}, nil)

	_, err := c.Submit(context.Background(), core.Outcome{
		GameID: "pong_versus", Mode: "two-player", Score: 2, OpponentScore: 5,
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got.mode != "two-player" || got.body["winner"] != "opponent" || got.body["isPerfectGame"] != false {
		t.Errorf("mode %q body %v", got.mode, got.body)
	}
	if got.auth != "" {
		t.Errorf("unexpected Authorization %q", got.auth)
	}
}

func TestSubmitArkanoid(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusCreated, okReply, &got)
	c := New(Config{BaseURL: srv.URL}, nil)

	_, err := c.Submit(context.Background(), core.Outcome{
		GameID: "arkanoid", Score: 930, Level: 3, XP: 250, BricksDestroyed: 75,
		Ticks: 600, TickRate: 60,
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got.path != "/arkanoid/score" {
		t.Errorf("path = %s", got.path)
	}
	expect := map[string]any{
		"score":             930.0,
		"levelReached":      3.0,
		"xpEarned":          250.0,
		"duration":          10.0,
		"blocksDestroyed":   75.0,
		"powerUpsCollected": 0.0,
	}
	for k, v := range expect {
		if got.body[k] != v {
			t.Errorf("body[%s] = %v, expected %v", k, got.body[k], v)
		}
	}
}

func TestSubmitRejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"success false", http.StatusOK, `{"success":false,"message":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got captured
			srv := newServer(t, tt.status, tt.reply, &got)
			c := New(Config{BaseURL: srv.URL}, nil)

			_, err := c.Submit(context.Background(), core.Outcome{GameID: "arkanoid"})
			if !errors.Is(err, ErrRejected) {
				t.Errorf("Submit() error = %v, expected ErrRejected", err)
			}
		})
	}
}

func TestSubmitUnknownGame(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	if _, err := c.Submit(context.Background(), core.Outcome{GameID: "tetris"}); err == nil {
		t.Error("expected an error for an unsupported game")
	}
}

func TestConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := EnvURL + "=https://arcade.example/api/\n" + EnvToken + "=from-file\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvURL, "")
	os.Unsetenv(EnvURL)
	t.Setenv(EnvToken, "from-env")

	cfg := ConfigFromEnv(nil, envFile, filepath.Join(dir, "missing.env"))
	if cfg.BaseURL != "https://arcade.example/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, environment should win", cfg.Token)
	}
	if !cfg.Enabled() {
		t.Error("expected Enabled()")
	}
}

func TestConfigFromEnvWarnsOnBrokenFile(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.env")
	if err := os.WriteFile(broken, []byte("BAD-KEY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "good.env")
	if err := os.WriteFile(good, []byte(EnvURL+"=https://arcade.example\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvURL, "")
	os.Unsetenv(EnvURL)

	var buf bytes.Buffer
	cfg := ConfigFromEnv(log.New(&buf), broken, good)

	if !strings.Contains(buf.String(), "broken.env") {
		t.Errorf("expected a warning naming the broken file, log = %q", buf.String())
	}
	if cfg.BaseURL != "https://arcade.example" {
		t.Errorf("BaseURL = %q, later files should still load", cfg.BaseURL)
	}
}
