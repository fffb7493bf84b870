package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/progress"
	"github.com/vovakirdan/neon-arcade/internal/report"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

const submitTimeout = 10 * time.Second

// Recorder persists finished games and forwards them to the remote API.
// Either side may be nil.
type Recorder struct {
	Store    *storage.Store
	Reporter *report.Client
	Player   string
	Logger   *log.Logger
}

// ResultMsg is delivered to the game model once a result has been handled.
type ResultMsg struct {
	Outcome  core.Outcome
	Unlocked []progress.Achievement
	Stats    progress.Stats
	Remote   *report.Response
	Err      error
}

func (r *Recorder) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

// Record returns a command that stores o and submits it. It never blocks the
// update loop and only reads o.
func (r *Recorder) Record(o core.Outcome) tea.Cmd {
	if r == nil || (r.Store == nil && r.Reporter == nil) {
		return nil
	}
	return func() tea.Msg {
		return r.record(context.Background(), o)
	}
}

func (r *Recorder) record(ctx context.Context, o core.Outcome) ResultMsg {
	msg := ResultMsg{Outcome: o}
	logger := r.logger()

	if r.Store != nil {
		rec, err := r.Store.RecordGame(r.Player, o)
		if err != nil {
			logger.Error("cannot record game", "game", o.GameID, "error", err)
			msg.Err = err
		} else {
			msg.Unlocked = rec.Unlocked
			msg.Stats = rec.Stats
			logger.Info("game recorded", "game", o.GameID, "player", r.Player,
				"score", o.Score, "xp", o.XP, "unlocked", len(rec.Unlocked))
		}
	}

	if r.Reporter != nil {
		ctx, cancel := context.WithTimeout(ctx, submitTimeout)
		defer cancel()

		resp, err := r.Reporter.Submit(ctx, o)
		switch {
		case errors.Is(err, report.ErrRejected):
			logger.Warn("server rejected result", "game", o.GameID, "error", err)
		case err != nil:
			logger.Warn("cannot submit result", "game", o.GameID, "error", err)
		default:
			msg.Remote = &resp
		}
		if err != nil && msg.Err == nil {
			msg.Err = err
		}
	}
	return msg
}
