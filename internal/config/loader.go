package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "bubbles.yaml"

// Load loads the application configuration.
// Search order: customPath -> ~/.bubbles/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default
// Files are decoded over the defaults, so they only need the keys they change.
// A preset other than "custom" overrides the explicit pacing values.
func Load(customPath string) (BubblesConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}

	if p := PacePreset(cfg.Reveal.Pace.Preset); p != "" && p != PaceCustom {
		ApplyPacePreset(&cfg.Reveal.Pace, p)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (BubblesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBubblesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBubblesYAML)
	if err != nil {
		return DefaultBubblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults.
func Parse(data []byte) (BubblesConfig, error) {
	cfg := DefaultBubblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultBubblesConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubbles", "configs", filename)
}
