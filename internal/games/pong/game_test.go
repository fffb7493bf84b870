package pong

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func newTestGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewGame(mode)
	g.Reset(testRuntime())
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDSingle, IDVersus} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.Resizer); !ok {
			t.Errorf("%s should support resizing", id)
		}
	}
}

func TestServeDelayHoldsBall(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	start := g.Engine().State()

	for i := 0; i < g.serveDelay; i++ {
		g.Step(core.NewInputFrame())
	}
	if st := g.Engine().State(); st.BallX != start.BallX || st.BallY != start.BallY {
		t.Error("ball should wait at the centre during the serve delay")
	}

	g.Step(core.NewInputFrame())
	if g.Engine().State().BallX == start.BallX {
		t.Error("ball should move once the serve delay ends")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	g.serving = 0

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if res := g.Step(in); !res.State.Paused {
		t.Fatal("expected paused after pause action")
	}

	before := g.Engine().Snapshot()
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if g.Engine().Snapshot() != before {
		t.Error("paused game should not advance")
	}

	if res := g.Step(in); res.State.Paused {
		t.Error("second pause action should resume")
	}
}

func TestSinglePlayerArrowsDriveLeftPaddle(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	g.serving = 0
	start := g.Engine().State().Paddle1Y

	in := core.NewInputFrame()
	in.Set(core.ActionAltUp)
	g.Step(in)

	if got := g.Engine().State().Paddle1Y; got >= start {
		t.Errorf("Paddle1Y = %v, expected to move up from %v", got, start)
	}
}

func TestVersusSplitsControls(t *testing.T) {
	g := newTestGame(t, TwoPlayer)
	g.serving = 0
	start := g.Engine().State()

	in := core.NewInputFrame()
	in.Set(core.ActionDown)
	in.Set(core.ActionAltUp)
	g.Step(in)

	st := g.Engine().State()
	if st.Paddle1Y <= start.Paddle1Y {
		t.Error("W/S should drive the left paddle")
	}
	if st.Paddle2Y >= start.Paddle2Y {
		t.Error("arrows should drive the right paddle")
	}
}

func TestPointerMovesPaddle(t *testing.T) {
	g := newTestGame(t, SinglePlayer)

	in := core.NewInputFrame()
	in.Pointer = &core.Pointer{Col: 2, Row: 0, Start: true}
	g.Step(in)

	if got := g.Engine().State().Paddle1Y; got != 0 {
		t.Errorf("Paddle1Y = %v, expected top after touching row 0", got)
	}
}

func TestOutcomeReportedOnce(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	g.serving = 0
	g.engine.state.PlayerScore = 4
	g.engine.state.OpponentScore = 2
	primePoint(g.engine, SidePlayer)

	res := g.Step(core.NewInputFrame())
	if res.Outcome == nil {
		t.Fatal("expected an outcome on the deciding tick")
	}

	o := res.Outcome
	if o.GameID != IDSingle || o.Mode != "one-player" || !o.Won {
		t.Errorf("Outcome = %+v", o)
	}
	if o.Score != 5 || o.OpponentScore != 2 {
		t.Errorf("Outcome score %d-%d, expected 5-2", o.Score, o.OpponentScore)
	}
	if o.XP != 100+5/2+3*5 {
		t.Errorf("Outcome XP = %d", o.XP)
	}
	if o.TickRate != 60 || o.Ticks != 1 {
		t.Errorf("Outcome ticks = %d at %d", o.Ticks, o.TickRate)
	}

	for range 5 {
		if res := g.Step(core.NewInputFrame()); res.Outcome != nil || !res.State.GameOver {
			t.Fatalf("finished game reported %+v", res)
		}
	}
}

func TestResizeKeepsProportions(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	e := g.Engine()
	before := e.State()

	g.Resize(160, 48)

	if e.Scale() != 2 {
		t.Fatalf("Scale() = %v, expected 2", e.Scale())
	}
	if got := e.State().BallX; got != before.BallX*2 {
		t.Errorf("BallX = %v, expected %v", got, before.BallX*2)
	}

	g.Resize(10, 5)
	if e.Scale() != 0.5 {
		t.Errorf("Scale() = %v, expected clamp to 0.5", e.Scale())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, SinglePlayer)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.HasPrefix(screen.Row(0), " P1") {
		t.Errorf("Row(0) = %q, expected P1 label", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "CPU") {
		t.Errorf("Row(0) = %q, expected CPU label", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "█") {
		t.Error("expected paddles to be drawn")
	}

	g.paused = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause panel")
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%70 < 25:
			inputs[i].Set(core.ActionUp)
		case i%70 > 45:
			inputs[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, SinglePlayer)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Engine().Snapshot()
	}

	if a, b := run(), run(); a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: %+v vs %+v", a, b)
	}
}

func TestSetDifficulty(t *testing.T) {
	speed := func(preset string) float64 {
		g := NewGame(SinglePlayer)
		g.SetDifficulty(preset)
		g.Reset(testRuntime())
		return g.Engine().Settings().AIPaddleSpeed
	}

	easy, hard := speed("easy"), speed("hard")
	if easy >= hard {
		t.Errorf("easy CPU speed %v should be below hard %v", easy, hard)
	}
}

func useConfig(t *testing.T, yaml string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "pong.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func TestRejectedConfigFallsBackToDefaults(t *testing.T) {
	useConfig(t, `
table: {width: 800, height: 500}
paddles: {height: 100, width: 15, speed: -6}
ball: {size: 10, speed: 4}
gameplay: {winning_score: 5}
`)
	g := newTestGame(t, SinglePlayer)

	if err := g.ConfigErr(); !errors.Is(err, core.ErrInvalidSettings) {
		t.Errorf("ConfigErr() = %v, expected ErrInvalidSettings", err)
	}
	if got := g.Engine().Settings().PaddleSpeed; got != DefaultSettings().PaddleSpeed {
		t.Errorf("PaddleSpeed = %v, expected the default", got)
	}
	if _, ok := registry.Game(g).(registry.ConfigReporter); !ok {
		t.Error("Game should report config problems")
	}
}

func TestConfigErrClearedOnGoodConfig(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(t, SinglePlayer)
	if g.ConfigErr() == nil {
		t.Fatal("expected an error for a missing config file")
	}

	useConfig(t, `
table: {width: 800, height: 500}
paddles: {height: 80, width: 15, speed: 6}
ball: {size: 10, speed: 4}
gameplay: {winning_score: 3}
`)
	g.Reset(testRuntime())
	if err := g.ConfigErr(); err != nil {
		t.Errorf("ConfigErr() = %v after a valid config", err)
	}
	if g.Engine().Settings().PaddleHeight != 80 {
		t.Errorf("PaddleHeight = %v, expected 80 from config", g.Engine().Settings().PaddleHeight)
	}
}
