// Package bubbles implements the bubble simulation as a registry.Sim:
// a population of drifting bubbles that bounce off the terminal edges and
// respawn elsewhere whenever two of them touch.
package bubbles

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/sim"
)

// Variant selects the overlap test a registered simulation is locked to.
type Variant int

const (
	VariantClassic Variant = iota // Circle test
	VariantBoxed                  // Shrunk box test
)

// Minimum screen size to run
const (
	MinScreenW = 20
	MinScreenH = 6
)

// speedSteps are the playback multipliers cycled with +/-.
var speedSteps = []float64{0.25, 0.5, 1, 2, 4}

const defaultSpeedIndex = 2

// configPath stores the custom config path set via CLI
var configPath string

// preset stores the preset set via CLI
var preset config.Preset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset sets the preset applied after loading the config.
func SetPreset(p config.Preset) {
	preset = p
}

// LoadConfig returns the configuration the simulation registered under id
// runs with: the config file, then the CLI preset, then the variant's own
// overrides.
func LoadConfig(id string) (config.BubblesConfig, error) {
	switch id {
	case "bubbles":
		return loadConfig(VariantClassic)
	case "bubbles_box":
		return loadConfig(VariantBoxed)
	}
	return config.BubblesConfig{}, fmt.Errorf("bubbles: unknown simulation %q", id)
}

func loadConfig(v Variant) (config.BubblesConfig, error) {
	cfg, err := config.LoadBubbles(configPath)
	if err != nil {
		return config.BubblesConfig{}, err
	}
	if preset != config.PresetNone {
		config.ApplyPreset(&cfg, preset)
	}
	applyVariant(&cfg, v)
	return cfg, nil
}

// applyVariant locks the overlap test of the variant. Shrink and schedule
// stay with the file and the preset.
func applyVariant(cfg *config.BubblesConfig, v Variant) {
	if v == VariantBoxed {
		cfg.Overlap.Test = string(sim.TestBox)
	}
}

// Game drives a sim.World from platform frames and draws it.
type Game struct {
	variant Variant

	runtime  core.RuntimeConfig
	cfg      config.BubblesConfig
	viewport *screenViewport
	rng      *sim.SimpleRNG
	world    *sim.World

	populated bool
	paused    bool
	speedIdx  int
	err       error // Sticky fatal error
}

// New creates a classic (circle test) bubble simulation.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewBoxed creates a bubble simulation using the shrunk box test.
func NewBoxed() *Game {
	return &Game{variant: VariantBoxed}
}

// ID returns the unique identifier for this simulation.
func (g *Game) ID() string {
	if g.variant == VariantBoxed {
		return "bubbles_box"
	}
	return "bubbles"
}

// Title returns the display name for this simulation.
func (g *Game) Title() string {
	if g.variant == VariantBoxed {
		return "Bubbles (Box)"
	}
	return "Bubbles"
}

// Reset loads the configuration and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.speedIdx = defaultSpeedIndex
	g.populated = false
	g.err = nil
	g.world = nil

	cfg, err := loadConfig(g.variant)
	if err != nil {
		g.err = fmt.Errorf("bubbles: config: %w", err)
		return
	}
	g.cfg = cfg

	g.viewport = newScreenViewport(cfg.Viewport.CellWidth, cfg.Viewport.CellHeight)
	if runtime.ScreenW > 0 && runtime.ScreenH > 0 {
		g.viewport.setSize(runtime.ScreenW, runtime.ScreenH)
	}

	params, err := cfg.Params()
	if err != nil {
		g.err = fmt.Errorf("bubbles: %w", err)
		return
	}
	g.rng = sim.NewSimpleRNG(runtime.Seed)
	g.world, err = sim.NewWorld(params, g.viewport, g.rng)
	if err != nil {
		g.err = fmt.Errorf("bubbles: %w", err)
		return
	}
	// Without a size this fails; the next Step tries once more and stops
	// the run if a resize has not arrived by then.
	_ = g.populate()
}

// populate fills the world once the viewport has a size. Until then the
// world stays empty and the next Step retries.
func (g *Game) populate() error {
	if err := g.world.Populate(); err != nil {
		return err
	}
	g.populated = true
	return nil
}

// Resize updates the viewport. The population is kept; bodies now outside
// the area are steered back by the border reflector.
func (g *Game) Resize(w, h int) {
	if g.viewport == nil {
		return
	}
	g.viewport.setSize(w, h)
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	if in.Has(core.ActionRestart) {
		g.runtime.Seed = int64(g.rng.Next() >> 1)
		g.Reset(g.runtime)
		return core.StepResult{State: g.State(), Err: g.err}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionFaster) && g.speedIdx < len(speedSteps)-1 {
		g.speedIdx++
	}
	if in.Has(core.ActionSlower) && g.speedIdx > 0 {
		g.speedIdx--
	}

	if g.paused || g.tooSmall() {
		return core.StepResult{State: g.State()}
	}

	if !g.populated {
		if err := g.populate(); err != nil {
			g.err = fmt.Errorf("bubbles: populate: %w", err)
			return core.StepResult{State: g.State(), Err: g.err}
		}
	}

	dt := in.DeltaSeconds(g.runtime.TickRate) * speedSteps[g.speedIdx]
	if err := g.world.Tick(dt); err != nil {
		g.err = fmt.Errorf("bubbles: tick: %w", err)
		return core.StepResult{State: g.State(), Err: g.err}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) tooSmall() bool {
	return g.viewport.sized && (g.viewport.cols < MinScreenW || g.viewport.rows < MinScreenH)
}

// State returns the current run state.
func (g *Game) State() core.RunState {
	st := core.RunState{
		Paused: g.paused,
		Speed:  speedSteps[g.speedIdx],
	}
	if g.world != nil {
		stats := g.world.Stats()
		st.Ticks = stats.Ticks
		st.Respawns = stats.Respawns
		st.Population = g.world.Len()
	}
	return st
}

// Err returns the fatal error that stopped the simulation, if any.
func (g *Game) Err() error {
	return g.err
}

// ViewportLost reports whether the run stopped because the screen size
// could not be read.
func (g *Game) ViewportLost() bool {
	return errors.Is(g.err, sim.ErrViewportUnavailable)
}

// Config returns the configuration in effect after presets were applied.
func (g *Game) Config() config.BubblesConfig {
	return g.cfg
}

// Seed returns the seed of the current world.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Snapshot returns the world state for determinism checks.
func (g *Game) Snapshot() sim.Snapshot {
	if g.world == nil {
		return sim.Snapshot{}
	}
	return g.world.Snapshot()
}

// Register the simulations with the registry
func init() {
	registry.Register("bubbles", func() registry.Sim {
		return New()
	})
	registry.Register("bubbles_box", func() registry.Sim {
		return NewBoxed()
	})
}
