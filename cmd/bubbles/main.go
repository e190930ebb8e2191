// bubbles reveals a picture in the terminal by splitting bubbles.
//
// Usage:
//
//	bubbles list                  - List built-in pictures and themes
//	bubbles play <picture|file>   - Reveal a picture interactively
//	bubbles build <picture|file>  - Build a pyramid and print its statistics
//	bubbles history [source]      - Show recorded reveals
//	bubbles serve                 - Start SSH server for remote reveals
//
// Global flags:
//
//	--config <path> - Use a custom bubbles.yaml
//	--db <path>     - Set database path (default: ~/.bubbles/history.db)
//	--verbose       - Enable debug logging
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/config"

	// Import pictures to register them
	_ "github.com/vovakirdan/tui-bubbles/internal/pictures"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool

	// bubblesCfg is loaded once before any subcommand runs.
	bubblesCfg config.BubblesConfig
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Bubbles - Reveal pictures by splitting bubbles in your terminal",
	Long: `Bubbles hides a picture behind one big bubble. Move the mouse over a
bubble to split it into four smaller ones, each showing the average color
of the pixels beneath, until the picture appears.

Available commands:
  list     - Show built-in pictures and themes
  play     - Reveal a picture in the terminal
  build    - Build a pyramid and print statistics
  history  - View recorded reveals
  serve    - Start SSH server for remote play

Examples:
  bubbles list
  bubbles play rings
  bubbles play ~/Pictures/cat.jpg --shape square
  bubbles build gradient --max 128
  bubbles serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom bubbles.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubbles/history.db", "Path to history database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration and attaches a logger to the command context.
func setup(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	cmd.SetContext(log.WithContext(cmd.Context(), logger))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	bubblesCfg = cfg
	logger.Debug("configuration loaded", "path", flagConfig, "shape", cfg.Pyramid.Shape, "pace", cfg.Reveal.Pace.Preset)
	return nil
}

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
