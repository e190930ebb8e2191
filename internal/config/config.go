// Package config provides YAML-based configuration loading for the bubble
// pyramid: cell size bounds, picture decoding, reveal pacing and theme.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pixel"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
)

// BubblesConfig contains all configuration for the application.
type BubblesConfig struct {
	Pyramid  PyramidConfig `yaml:"pyramid"`
	Image    ImageConfig   `yaml:"image"`
	Reveal   RevealConfig  `yaml:"reveal"`
	Theme    ThemeConfig   `yaml:"theme"`
	TickRate int           `yaml:"tick_rate"` // Frames per second
}

// PyramidConfig defines the cell size bounds and drawing shape.
type PyramidConfig struct {
	MinCellSize int    `yaml:"min_cell_size"`
	MaxCellSize int    `yaml:"max_cell_size"` // 0 = fit to the display
	Shape       string `yaml:"shape"`
	Workers     int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// ImageConfig defines how raw pixel buffers are interpreted.
type ImageConfig struct {
	ChannelOrder string `yaml:"channel_order"`
}

// RevealConfig defines milestones and auto-split pacing.
type RevealConfig struct {
	Midway float64    `yaml:"midway"`
	Pace   PaceConfig `yaml:"pace"`
}

// ThemeConfig selects the renderer palette.
type ThemeConfig struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"` // "#rrggbb"
}

// Validate reports the first invalid field.
func (c BubblesConfig) Validate() error {
	if c.Pyramid.MinCellSize <= 0 {
		return fmt.Errorf("config: pyramid.min_cell_size must be positive, got %d", c.Pyramid.MinCellSize)
	}
	if c.Pyramid.MaxCellSize < 0 {
		return fmt.Errorf("config: pyramid.max_cell_size must not be negative, got %d", c.Pyramid.MaxCellSize)
	}
	if c.Pyramid.MaxCellSize > 0 && c.Pyramid.MaxCellSize <= c.Pyramid.MinCellSize {
		return fmt.Errorf("config: pyramid.max_cell_size %d must exceed min_cell_size %d",
			c.Pyramid.MaxCellSize, c.Pyramid.MinCellSize)
	}
	if _, ok := pyramid.ParseShape(c.Pyramid.Shape); !ok {
		return fmt.Errorf("config: unknown pyramid.shape %q", c.Pyramid.Shape)
	}
	if _, ok := pixel.ParseChannelOrder(c.Image.ChannelOrder); !ok {
		return fmt.Errorf("config: unknown image.channel_order %q", c.Image.ChannelOrder)
	}
	if c.Reveal.Midway < 0 || c.Reveal.Midway > 1 {
		return fmt.Errorf("config: reveal.midway must be within [0, 1], got %v", c.Reveal.Midway)
	}
	if err := c.Reveal.Pace.Validate(); err != nil {
		return err
	}
	if c.Theme.Background != "" {
		if _, err := core.ParseHex(c.Theme.Background); err != nil {
			return fmt.Errorf("config: theme.background: %w", err)
		}
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	return nil
}

// ShapeValue returns the parsed pyramid shape, circle if unrecognized.
func (c PyramidConfig) ShapeValue() pyramid.Shape {
	s, _ := pyramid.ParseShape(c.Shape)
	return s
}

// Order returns the parsed channel order, rgba if unrecognized.
func (c ImageConfig) Order() pixel.ChannelOrder {
	o, _ := pixel.ParseChannelOrder(c.ChannelOrder)
	return o
}

// BackgroundColor returns the parsed theme background, or fallback.
func (c ThemeConfig) BackgroundColor(fallback core.Color) core.Color {
	if c.Background == "" {
		return fallback
	}
	col, err := core.ParseHex(c.Background)
	if err != nil {
		return fallback
	}
	return col
}

// Runtime converts the display settings into a core.RuntimeConfig.
func (c BubblesConfig) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.TickRate > 0 {
		rc.TickRate = c.TickRate
	}
	return rc
}
