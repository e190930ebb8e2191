package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/source"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var (
	flagRawSize      string
	flagChannelOrder string
	flagShape        string
	flagTheme        string
	flagMinSize      int
	flagMaxSize      int
	flagPace         string
	flagLogFile      string
	flagNoHistory    bool
)

var playCmd = &cobra.Command{
	Use:   "play <picture|file>",
	Short: "Reveal a picture",
	Long: `Reveal a built-in picture or an image file (PNG, JPEG, GIF, BMP, TIFF,
WebP, or headerless .raw pixel dumps) in the terminal.

Controls:
  Mouse       - Split the bubble under the pointer (click or drag)
  Space       - Split the biggest bubble
  A           - Auto-complete (unlocks at the midway milestone)
  S/Esc       - Stop auto-complete
  Tab         - Toggle circle/square bubbles
  R           - Restart
  Ctrl+S      - Save a PNG screenshot to ~/.bubbles/screenshots
  Q/Ctrl+C    - Quit

Pace options:
  slow, normal, fast, instant

Examples:
  bubbles play rings
  bubbles play photo.jpg --theme neon
  bubbles play dump.raw --raw-size 640x480 --channel-order bgra
  bubbles play checkerboard --min 2 --pace fast`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addSourceFlags(playCmd)
	playCmd.Flags().StringVar(&flagShape, "shape", "", "Bubble shape: circle or square")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme name (see 'bubbles list')")
	playCmd.Flags().IntVar(&flagMinSize, "min", 0, "Smallest bubble in pixels, rounded down to a power of two")
	playCmd.Flags().IntVar(&flagMaxSize, "max", 0, "Largest bubble in pixels (0 = fit the terminal)")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Auto-complete pace preset: slow, normal, fast, instant")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write reveal logs to a file while the TUI runs")
	playCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this reveal")
}

// addSourceFlags registers the flags that describe raw pixel dumps.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRawSize, "raw-size", "", "Size of a .raw pixel dump as WxH")
	cmd.Flags().StringVar(&flagChannelOrder, "channel-order", "", "Channel order of a .raw pixel dump: rgba, bgra, argb, abgr")
}

// resolveSource resolves the picture argument using the source flags.
func resolveSource(arg string, cfg config.BubblesConfig) (source.Source, error) {
	raw := source.RawFormat{Order: cfg.Image.Order()}
	if flagRawSize != "" {
		w, h, err := source.ParseRawSize(flagRawSize)
		if err != nil {
			return source.Source{}, err
		}
		raw.Width, raw.Height = w, h
	}
	return source.Resolve(arg, raw)
}

// applyOverrides copies command-line overrides into cfg and revalidates it.
func applyOverrides(cfg *config.BubblesConfig) error {
	if flagChannelOrder != "" {
		cfg.Image.ChannelOrder = flagChannelOrder
	}
	if flagShape != "" {
		cfg.Pyramid.Shape = flagShape
	}
	if flagTheme != "" {
		cfg.Theme.Name = flagTheme
	}
	if flagMinSize > 0 {
		cfg.Pyramid.MinCellSize = flagMinSize
	}
	if flagMaxSize > 0 {
		cfg.Pyramid.MaxCellSize = flagMaxSize
	}
	if flagPace != "" {
		cfg.Reveal.Pace.Preset = flagPace
		config.ApplyPacePreset(&cfg.Reveal.Pace, config.PacePreset(flagPace))
	}
	return cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := log.FromContext(cmd.Context())

	cfg := bubblesCfg
	if err := applyOverrides(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, ok := tui.ThemeByName(nil, cfg.Theme.Name); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", cfg.Theme.Name)
		os.Exit(1)
	}

	src, err := resolveSource(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'bubbles list' to see built-in pictures.")
		os.Exit(1)
	}

	// Get terminal size
	rc := cfg.Runtime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	opts := tui.Options{
		Config: cfg,
		Origin: "local",
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if flagLogFile != "" {
		f, logErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", logErr)
			os.Exit(1)
		}
		defer f.Close()
		opts.Logger = newLogger(f, logger.GetLevel())
	}

	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		opts.ScreenshotDir = filepath.Join(home, ".bubbles", "screenshots")
	}

	// Open history storage
	if !flagNoHistory {
		store, storeErr := storage.Open(flagDBPath)
		if storeErr != nil {
			logger.Warn("could not open history database", "error", storeErr)
			// Continue without storage - the reveal still works
		} else {
			opts.Store = store
			defer store.Close()
		}
	}

	logger.Debug("starting reveal", "source", src.Name(), "width", rc.ScreenW, "height", rc.ScreenH)

	if runErr := tui.Run(src, opts, rc); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running reveal: %v\n", runErr)
		os.Exit(1)
	}
}
