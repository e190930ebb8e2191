package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/pixel"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(DefaultBubblesConfig(), cfg); diff != "" {
		t.Errorf("embedded YAML differs from DefaultBubblesConfig (-want +got):\n%s", diff)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
pyramid:
  shape: square
  max_cell_size: 64
image:
  channel_order: bgra
reveal:
  pace:
    preset: custom
    ticks_per_step: 5
    start_batch: 2
    end_batch: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Pyramid.ShapeValue() != pyramid.ShapeSquare {
		t.Errorf("shape = %v, want square", cfg.Pyramid.ShapeValue())
	}
	if cfg.Image.Order() != pixel.OrderBGRA {
		t.Errorf("channel order = %v, want bgra", cfg.Image.Order())
	}
	if cfg.Pyramid.MinCellSize != 1 || cfg.Pyramid.MaxCellSize != 64 {
		t.Errorf("cell sizes = %d..%d", cfg.Pyramid.MinCellSize, cfg.Pyramid.MaxCellSize)
	}
	want := PaceConfig{Preset: "custom", TicksPerStep: 5, StartBatch: 2, EndBatch: 3}
	if diff := cmp.Diff(want, cfg.Reveal.Pace); diff != "" {
		t.Errorf("pace mismatch (-want +got):\n%s", diff)
	}
	if cfg.Reveal.Midway != 0.3 || cfg.TickRate != 30 {
		t.Errorf("untouched keys should keep defaults: midway %v tick %d", cfg.Reveal.Midway, cfg.TickRate)
	}
}

func TestLoadPresetOverridesValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
reveal:
  pace:
    preset: fast
    ticks_per_step: 40
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reveal.Pace.TicksPerStep != 1 || cfg.Reveal.Pace.EndBatch != 64 {
		t.Errorf("fast preset not applied: %+v", cfg.Reveal.Pace)
	}
}

func TestLoadUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".bubbles", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "tick_rate: 12\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickRate != 12 {
		t.Errorf("TickRate = %d, want 12 from user config", cfg.TickRate)
	}
	if cfg.Runtime().TickRate != 12 {
		t.Errorf("Runtime().TickRate = %d", cfg.Runtime().TickRate)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := writeConfig(t, t.TempDir(), "pyramid: [not, a, map]\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BubblesConfig)
		field  string
	}{
		{"min size", func(c *BubblesConfig) { c.Pyramid.MinCellSize = 0 }, "min_cell_size"},
		{"max below min", func(c *BubblesConfig) { c.Pyramid.MinCellSize, c.Pyramid.MaxCellSize = 8, 4 }, "max_cell_size"},
		{"negative max", func(c *BubblesConfig) { c.Pyramid.MaxCellSize = -1 }, "max_cell_size"},
		{"shape", func(c *BubblesConfig) { c.Pyramid.Shape = "hexagon" }, "shape"},
		{"channel order", func(c *BubblesConfig) { c.Image.ChannelOrder = "rgb" }, "channel_order"},
		{"midway", func(c *BubblesConfig) { c.Reveal.Midway = 1.5 }, "midway"},
		{"preset", func(c *BubblesConfig) { c.Reveal.Pace.Preset = "warp" }, "preset"},
		{"ticks", func(c *BubblesConfig) { c.Reveal.Pace.TicksPerStep = 0 }, "ticks_per_step"},
		{"background", func(c *BubblesConfig) { c.Theme.Background = "purple" }, "background"},
		{"tick rate", func(c *BubblesConfig) { c.TickRate = 0 }, "tick_rate"},
	}

	if err := DefaultBubblesConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBubblesConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should name %s", err, tc.field)
			}
		})
	}
}

func TestThemeBackgroundColor(t *testing.T) {
	fallback := core.Black
	if got := (ThemeConfig{}).BackgroundColor(fallback); got != fallback {
		t.Errorf("empty background = %v, want fallback", got)
	}
	if got := (ThemeConfig{Background: "nope"}).BackgroundColor(fallback); got != fallback {
		t.Errorf("invalid background = %v, want fallback", got)
	}
	if got := (ThemeConfig{Background: "#ffffff"}).BackgroundColor(fallback); got.Hex() != "#ffffff" {
		t.Errorf("white background = %v", got)
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(PaceConfig{TicksPerStep: 3, StartBatch: 1, EndBatch: 9})

	due := 0
	for tick := range 9 {
		if p.Due(tick) {
			due++
		}
	}
	if due != 3 {
		t.Errorf("Due fired %d times in 9 ticks, want 3", due)
	}

	tests := []struct {
		progress float64
		want     int
	}{
		{0, 1},
		{0.5, 5},
		{1, 9},
		{-1, 1},
		{2, 9},
	}
	for _, tc := range tests {
		if got := p.Batch(tc.progress); got != tc.want {
			t.Errorf("Batch(%v) = %d, want %d", tc.progress, got, tc.want)
		}
	}
}

func TestPacerInstantAndZeroStep(t *testing.T) {
	cfg := PaceConfig{}
	ApplyPacePreset(&cfg, PaceInstant)
	p := NewPacer(cfg)
	if p.Batch(0.2) != math.MaxInt {
		t.Errorf("instant batch = %d, want unlimited", p.Batch(0.2))
	}
	if !p.Due(7) {
		t.Error("instant pacing should be due every tick")
	}

	if !NewPacer(PaceConfig{StartBatch: 1}).Due(5) {
		t.Error("zero ticks_per_step should behave as 1")
	}
}

func TestApplyPacePreset(t *testing.T) {
	for _, preset := range []PacePreset{PaceSlow, PaceNormal, PaceFast, PaceInstant} {
		cfg := PaceConfig{Preset: "custom", TicksPerStep: 99}
		ApplyPacePreset(&cfg, preset)
		if cfg.Preset != string(preset) {
			t.Errorf("%s: Preset = %q", preset, cfg.Preset)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset values should validate: %v", preset, err)
		}
	}

	cfg := PaceConfig{Preset: "custom", TicksPerStep: 99}
	ApplyPacePreset(&cfg, PaceCustom)
	if cfg.TicksPerStep != 99 {
		t.Error("custom preset should leave values untouched")
	}
}
