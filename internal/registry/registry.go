// Package registry provides a global registry of playable modes.
// Each mode registers itself in an init() function, so the platform
// can discover and instantiate modes without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-reversi/internal/core"
)

// ErrUnknownMode is returned by Create for an ID nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is the interface every playable mode implements.
// Games contain pure logic with no dependency on Bubble Tea.
// The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns the mode identifier used on the command line and in
	// stored results (e.g. "reversi").
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a new match. It is called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the match by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current match into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, game over and pause status.
	State() core.GameState
}

// Closer is implemented by games that own background work
// (for example an agent goroutine) and must be stopped explicitly.
type Closer interface {
	Close()
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game for a mode.
type Factory func() Game

type entry struct {
	info    ModeInfo
	factory Factory
}

var (
	modes = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Panics if the ID is empty or already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty mode id")
	}
	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	modes[id] = entry{
		info:    ModeInfo{ID: id, Title: f().Title(), Description: description},
		factory: f,
	}
}

// List returns all registered modes sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns metadata for a mode.
func Lookup(id string) (ModeInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	return e.info, ok
}

// Create instantiates a new game for the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return e.factory(), nil
}

// Exists checks whether a mode is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Release stops background work owned by g, if any.
func Release(g Game) {
	if c, ok := g.(Closer); ok {
		c.Close()
	}
}
