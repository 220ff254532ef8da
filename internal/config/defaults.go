package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the classic configuration: fifteen bubbles,
// circle overlap with a small slack, fixed-step physics.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Population: 15,
		Radius:     RadiusConfig{Min: 3, Max: 40},
		Velocity:   VelocityConfig{Max: 75},
		Overlap: OverlapConfig{
			Test:   "circle",
			Slack:  5,
			Shrink: 0.7,
		},
		Schedule: ScheduleConfig{
			Mode:        "fixed",
			Step:        0.01,
			MaxSubsteps: 8,
		},
		Respawn: RespawnConfig{Margin: "old"},
		Viewport: ViewportConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}
