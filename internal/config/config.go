// Package config provides YAML-based simulation configuration loading and
// named presets for the bubbles platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bubbles/internal/sim"
)

// BubblesConfig contains all configuration for the bubble simulation.
type BubblesConfig struct {
	Population int            `yaml:"population"`
	Radius     RadiusConfig   `yaml:"radius"`
	Velocity   VelocityConfig `yaml:"velocity"`
	Overlap    OverlapConfig  `yaml:"overlap"`
	Schedule   ScheduleConfig `yaml:"schedule"`
	Respawn    RespawnConfig  `yaml:"respawn"`
	Viewport   ViewportConfig `yaml:"viewport"`
}

// RadiusConfig bounds body sizes to [Min, Max).
type RadiusConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// VelocityConfig bounds each velocity component to [-Max, Max].
type VelocityConfig struct {
	Max float64 `yaml:"max"`
}

// OverlapConfig selects the overlap test.
type OverlapConfig struct {
	Test   string  `yaml:"test"`   // "circle" or "box"
	Slack  float64 `yaml:"slack"`  // Circle test only
	Shrink float64 `yaml:"shrink"` // Box test only
}

// ScheduleConfig selects how systems are ordered within a frame.
type ScheduleConfig struct {
	Mode        string  `yaml:"mode"` // "fixed" or "frame"
	Step        float64 `yaml:"step"`
	MaxSubsteps int     `yaml:"max_substeps"`
}

// RespawnConfig selects the margin policy used by the box variant.
type RespawnConfig struct {
	Margin string `yaml:"margin"` // "old" or "new"
}

// ViewportConfig maps terminal cells to world units.
type ViewportConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid bubbles config")

// Validate checks the values that the simulation cannot check itself.
func (c BubblesConfig) Validate() error {
	if c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %gx%g",
			ErrInvalidConfig, c.Viewport.CellWidth, c.Viewport.CellHeight)
	}
	if _, err := c.Params(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the configuration into simulation parameters.
func (c BubblesConfig) Params() (sim.Params, error) {
	test, err := sim.NewOverlapTest(sim.TestKind(c.Overlap.Test), c.Overlap.Slack, c.Overlap.Shrink)
	if err != nil {
		return sim.Params{}, err
	}
	margin, err := sim.ParseMarginPolicy(c.Respawn.Margin)
	if err != nil {
		return sim.Params{}, err
	}

	p := sim.Params{
		Population:  c.Population,
		Radius:      sim.Range{Min: c.Radius.Min, Max: c.Radius.Max},
		MaxVel:      c.Velocity.Max,
		Test:        test,
		Schedule:    sim.ScheduleMode(c.Schedule.Mode),
		FixedStep:   c.Schedule.Step,
		MaxSubsteps: c.Schedule.MaxSubsteps,
		Margin:      margin,
	}
	if err := p.Validate(); err != nil {
		return sim.Params{}, err
	}
	return p, nil
}
