// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// Sim is the interface every terminal simulation implements.
// Implementations hold pure logic and never import Bubble Tea; the platform
// handles input mapping, timing and rendering.
type Sim interface {
	// ID returns a unique identifier (e.g. "bubbles", "bubbles_box").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset (re)creates the simulation from scratch using the runtime config.
	Reset(cfg core.RuntimeConfig)

	// Resize tells the simulation the screen changed size. It must not
	// reset simulation state.
	Resize(w, h int)

	// Step advances the simulation by one frame. A StepResult with a
	// non-nil Err ends the run.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.RunState
}

// SimInfo contains metadata about a registered simulation.
type SimInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a simulation.
type Factory func() Sim

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry.
// Panics if the ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered simulations sorted by ID.
func List() []SimInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SimInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SimInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a simulation by ID.
func Create(id string) (Sim, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown simulation %q", id)
	}
	return f(), nil
}

// Exists reports whether a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
