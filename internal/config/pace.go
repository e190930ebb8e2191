package config

import (
	"fmt"
	"math"
)

// PaceConfig defines how fast auto-complete pulls split events.
// Every TicksPerStep ticks a batch of splits is applied; the batch grows
// linearly with progress from StartBatch to EndBatch. A zero batch means
// "everything left".
type PaceConfig struct {
	Preset       string `yaml:"preset"` // "slow", "normal", "fast", "instant" or "custom"
	TicksPerStep int    `yaml:"ticks_per_step"`
	StartBatch   int    `yaml:"start_batch"`
	EndBatch     int    `yaml:"end_batch"`
}

// PacePreset represents a named auto-complete speed.
type PacePreset string

const (
	PaceSlow    PacePreset = "slow"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
	PaceCustom  PacePreset = "custom"
)

// Validate reports negative or inconsistent pacing values.
func (c PaceConfig) Validate() error {
	switch PacePreset(c.Preset) {
	case "", PaceSlow, PaceNormal, PaceFast, PaceInstant, PaceCustom:
	default:
		return fmt.Errorf("config: unknown reveal.pace.preset %q", c.Preset)
	}
	if c.TicksPerStep <= 0 {
		return fmt.Errorf("config: reveal.pace.ticks_per_step must be positive, got %d", c.TicksPerStep)
	}
	if c.StartBatch < 0 || c.EndBatch < 0 {
		return fmt.Errorf("config: reveal.pace batches must not be negative")
	}
	return nil
}

// ApplyPacePreset overwrites the pacing values with a named preset.
// Custom and unknown presets leave cfg untouched.
func ApplyPacePreset(cfg *PaceConfig, preset PacePreset) {
	switch preset {
	case PaceSlow:
		cfg.TicksPerStep, cfg.StartBatch, cfg.EndBatch = 6, 1, 2
	case PaceNormal:
		cfg.TicksPerStep, cfg.StartBatch, cfg.EndBatch = 2, 1, 8
	case PaceFast:
		cfg.TicksPerStep, cfg.StartBatch, cfg.EndBatch = 1, 4, 64
	case PaceInstant:
		cfg.TicksPerStep, cfg.StartBatch, cfg.EndBatch = 1, 0, 0
	default:
		return
	}
	cfg.Preset = string(preset)
}

// Pacer turns a PaceConfig into per-tick split budgets.
type Pacer struct {
	cfg PaceConfig
}

// NewPacer creates a pacer. Non-positive TicksPerStep is treated as 1.
func NewPacer(cfg PaceConfig) *Pacer {
	if cfg.TicksPerStep <= 0 {
		cfg.TicksPerStep = 1
	}
	return &Pacer{cfg: cfg}
}

// Due reports whether a batch should run on this tick.
func (p *Pacer) Due(tick int) bool {
	return tick%p.cfg.TicksPerStep == 0
}

// Batch returns how many splits to apply at the given progress.
// Returns math.MaxInt when the batch is unlimited.
func (p *Pacer) Batch(progress float64) int {
	if p.cfg.StartBatch == 0 && p.cfg.EndBatch == 0 {
		return math.MaxInt
	}
	progress = clampF(progress, 0.0, 1.0)
	n := float64(p.cfg.StartBatch) + progress*float64(p.cfg.EndBatch-p.cfg.StartBatch)
	return max(1, int(math.Round(n)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
