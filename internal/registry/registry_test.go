package registry

import (
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

type stubGame struct {
	id, title string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func stubFactory(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", stubFactory("zz_stub", "Stub"))
	Register("aa_stub", stubFactory("aa_stub", "Another Stub"))

	if !Exists("zz_stub") || Exists("missing") {
		t.Fatal("Exists() disagrees with registrations")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Stub" {
		t.Errorf("Title() = %q", g.Title())
	}

	other, _ := Create("zz_stub")
	if other == g {
		t.Error("Create() must return a fresh instance")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("expected an error for an unknown ID")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
	if list[0].ID != "aa_stub" || list[0].Title != "Another Stub" {
		t.Errorf("List()[0] = %+v", list[0])
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", stubFactory("dup_stub", "Dup"))

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("dup_stub", stubFactory("dup_stub", "Dup"))
}
