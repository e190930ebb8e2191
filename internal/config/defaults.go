package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the built-in configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Pyramid: PyramidConfig{
			MinCellSize: 1,
			MaxCellSize: 0,
			Shape:       "circle",
			Workers:     0,
		},
		Image: ImageConfig{
			ChannelOrder: "rgba",
		},
		Reveal: RevealConfig{
			Midway: 0.3,
			Pace: PaceConfig{
				Preset:       string(PaceNormal),
				TicksPerStep: 2,
				StartBatch:   1,
				EndBatch:     8,
			},
		},
		Theme: ThemeConfig{
			Name:       "midnight",
			Background: "#101018",
		},
		TickRate: 30,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBubblesYAML
}
