package main

import (
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/pyramid"
	"github.com/vovakirdan/tui-bubbles/internal/reveal"
)

var (
	flagBuildMin     int
	flagBuildMax     int
	flagBuildWorkers int
	flagBuildOut     string
	flagBuildLevel   int
	flagBuildShape   string
)

var buildCmd = &cobra.Command{
	Use:   "build <picture|file>",
	Short: "Build a pyramid and print its statistics",
	Long: `Build the bubble pyramid for a picture without opening the TUI, print
its statistics, and optionally render one level as a PNG.

Examples:
  bubbles build rings
  bubbles build photo.jpg --min 2 --max 256 --workers 8
  bubbles build gradient --out gradient.png --level 2 --shape circle`,
	Args: cobra.ExactArgs(1),
	Run:  runBuild,
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).MarginBottom(1)
)

func init() {
	addSourceFlags(buildCmd)
	buildCmd.Flags().IntVar(&flagBuildMin, "min", 1, "Smallest bubble in pixels")
	buildCmd.Flags().IntVar(&flagBuildMax, "max", 64, "Largest bubble in pixels")
	buildCmd.Flags().IntVar(&flagBuildWorkers, "workers", 0, "Build workers (0 = config value)")
	buildCmd.Flags().StringVar(&flagBuildOut, "out", "", "Write the chosen level as a PNG")
	buildCmd.Flags().IntVar(&flagBuildLevel, "level", 0, "Level to render with --out (0 = leaves)")
	buildCmd.Flags().StringVar(&flagBuildShape, "shape", "square", "Bubble shape for --out: circle or square")
}

func runBuild(cmd *cobra.Command, args []string) {
	logger := log.FromContext(cmd.Context())

	cfg := bubblesCfg
	if flagChannelOrder != "" {
		cfg.Image.ChannelOrder = flagChannelOrder
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	workers := cfg.Pyramid.Workers
	if flagBuildWorkers > 0 {
		workers = flagBuildWorkers
	}
	shape, ok := pyramid.ParseShape(flagBuildShape)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown shape %q\n", flagBuildShape)
		os.Exit(1)
	}

	lo, hi, err := pyramid.FitRange(flagBuildMax, flagBuildMin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src, err := resolveSource(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	sampler, err := src.Sampler(hi / lo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sampling %s: %v\n", src.Name(), err)
		os.Exit(1)
	}
	sampled := time.Since(start)

	start = time.Now()
	p, err := pyramid.Build(sampler, lo, hi, shape == pyramid.ShapeSquare, pyramid.WithWorkers(workers))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pyramid: %v\n", err)
		os.Exit(1)
	}
	built := time.Since(start)
	logger.Debug("pyramid built", "source", src.Name(), "cells", p.TotalCells, "elapsed", built)

	// Reveal everything to check the split accounting end to end.
	m := reveal.New(p, reveal.WithMidway(cfg.Reveal.Midway))
	var events, midwayAt int
	for ev := range m.SplitAll() {
		events++
		if ev.Milestone.Has(reveal.MilestoneMidway) {
			midwayAt = events
		}
	}

	fmt.Println(titleStyle.Render("Pyramid - " + src.Name()))
	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
	}
	row("Cell sizes", fmt.Sprintf("%d..%d px", p.MinCellSize, p.MaxCellSize))
	row("Grid", fmt.Sprintf("%dx%d leaves", p.GridSide(), p.GridSide()))
	row("Levels", fmt.Sprintf("%d", p.Levels))
	row("Total cells", fmt.Sprintf("%d", p.TotalCells))
	row("Splittable", fmt.Sprintf("%d", p.SplittableCount()))
	row("Midway at", fmt.Sprintf("split %d", midwayAt))
	row("Split all", fmt.Sprintf("%d events, complete=%t", events, m.Complete()))
	row("Root color", lipgloss.NewStyle().Background(lipgloss.Color(p.Root.Color().Hex())).Render("    ")+" "+p.Root.Color().Hex())
	row("Sampling", sampled.Round(time.Microsecond).String())
	row("Build", fmt.Sprintf("%s (%d workers)", built.Round(time.Microsecond), workers))

	if flagBuildOut == "" {
		return
	}
	if err := writeLevel(flagBuildOut, p, flagBuildLevel, shape); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagBuildOut, err)
		os.Exit(1)
	}
	logger.Info("level rendered", "path", flagBuildOut, "level", flagBuildLevel)
}

// writeLevel paints every cell of one level and saves the frame as a PNG.
func writeLevel(path string, p *pyramid.Pyramid, level int, shape pyramid.Shape) error {
	if level < 0 || level >= p.Levels {
		return fmt.Errorf("level %d out of range [0, %d]", level, p.Levels-1)
	}

	var cells []*pyramid.Cell
	for c := range p.All() {
		if c.Level() == level {
			cells = append(cells, c)
		}
	}

	canvas := core.NewCanvas(p.MaxCellSize, p.MaxCellSize, core.Transparent)
	tui.Paint(canvas, cells, shape)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
