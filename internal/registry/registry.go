// Package registry holds the factories of every playable game. Games
// register from init() so hosts can list and create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Game is what a host drives: one Step per tick, one Render per frame.
// Implementations wrap a pure engine and never perform I/O.
type Game interface {
	// ID is the stable identifier used by the CLI and for stored results.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session for the given runtime configuration.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick. The result carries an Outcome exactly once,
	// on the tick the session finishes.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Resizer is implemented by games that keep their state across a terminal
// resize instead of being reset.
type Resizer interface {
	Resize(cols, rows int)
}

// Tunable is implemented by games that accept a per-instance difficulty
// preset, overriding the package-level default.
type Tunable interface {
	SetDifficulty(preset string)
}

// ConfigReporter is implemented by games that fall back to stock tuning when
// the user's config cannot be loaded or is rejected.
type ConfigReporter interface {
	// ConfigErr returns why the last Reset ignored the user's config, or nil.
	ConfigErr() error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
