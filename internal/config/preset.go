package config

import "fmt"

// Preset is a named set of overrides applied on top of a loaded config.
type Preset string

const (
	PresetNone    Preset = ""
	PresetClassic Preset = "classic" // circle test, fixed-step physics
	PresetBoxed   Preset = "boxed"   // shrunk box test, per-frame schedule
	PresetCalm    Preset = "calm"    // fewer, slower bubbles
	PresetCrowded Preset = "crowded" // twice the population
)

// Presets lists the named presets in display order.
var Presets = []Preset{PresetClassic, PresetBoxed, PresetCalm, PresetCrowded}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (Preset, error) {
	p := Preset(s)
	if p == PresetNone {
		return p, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return PresetNone, fmt.Errorf("unknown preset %q (expected classic, boxed, calm or crowded)", s)
}

// ApplyPreset modifies the config in place.
func ApplyPreset(cfg *BubblesConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Overlap.Test = "circle"
		cfg.Overlap.Slack = 5
		cfg.Schedule.Mode = "fixed"
		if cfg.Schedule.Step <= 0 {
			cfg.Schedule.Step = 0.01
		}
	case PresetBoxed:
		cfg.Overlap.Test = "box"
		cfg.Overlap.Shrink = 0.7
		cfg.Schedule.Mode = "frame"
	case PresetCalm:
		cfg.Velocity.Max /= 2
		cfg.Population = (cfg.Population*2 + 2) / 3
	case PresetCrowded:
		cfg.Population *= 2
	}
}
