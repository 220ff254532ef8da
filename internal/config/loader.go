package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const bubblesFile = "bubbles.yaml"

// LoadBubbles loads the bubble simulation configuration.
// Search order: customPath -> ~/.bubbles/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BubblesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBubbles(data)
		if err != nil {
			return BubblesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(bubblesFile), filepath.Join("configs", bubblesFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseBubbles(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parseBubbles(defaultBubblesYAML)
	if err != nil {
		return DefaultBubblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseBubbles(data []byte) (BubblesConfig, error) {
	cfg := DefaultBubblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BubblesConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BubblesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubbles", "configs", filename)
}
