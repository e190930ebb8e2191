package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [source]",
	Short: "Show recorded reveals",
	Long: `Display recent reveals, or the statistics and recent reveals of one
source when a picture ID or image path is given.

Examples:
  bubbles history
  bubbles history rings
  bubbles history rings --clear
  bubbles history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of reveals to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the history instead of showing it")
}

func runHistory(cmd *cobra.Command, args []string) {
	var src string
	if len(args) == 1 {
		src = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(src); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		if src == "" {
			fmt.Println("History cleared.")
		} else {
			fmt.Printf("History of %s cleared.\n", src)
		}
		return
	}

	var sessions []storage.Session
	if src == "" {
		sessions, err = store.RecentSessions(flagHistoryLimit)
	} else {
		printSourceStats(store, src)
		sessions, err = store.SessionsBySource(src, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(sessions) == 0 {
		fmt.Println("No reveals recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubbles play <picture>' to record the first one!")
		return
	}

	fmt.Println("Recent reveals")
	fmt.Println()

	// Print header
	fmt.Printf("  %-16s  %-14s  %-12s  %-9s  %-9s  %s\n", "Source", "Origin", "Splits", "Done", "Time", "Date")
	fmt.Printf("  %-16s  %-14s  %-12s  %-9s  %-9s  %s\n", "------", "------", "------", "----", "----", "----")

	// Print sessions
	for _, s := range sessions {
		done := "no"
		if s.Completed {
			done = "yes"
		}
		splits := fmt.Sprintf("%d/%d", s.Splits, s.TotalCells)
		dateStr := s.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-14s  %-12s  %-9s  %-9s  %s\n",
			truncate(s.Source, 16), truncate(s.Origin, 14), splits, done,
			s.Duration.Round(time.Second), dateStr)
	}
}

func printSourceStats(store *storage.Store, src string) {
	stats, err := store.GetSourceStats(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if stats.Sessions == 0 {
		return
	}

	fmt.Printf("Statistics - %s\n", src)
	fmt.Println()
	fmt.Printf("  Reveals:     %d (%d completed)\n", stats.Sessions, stats.Completed)
	fmt.Printf("  Splits:      %d\n", stats.TotalSplits)
	fmt.Printf("  By hand:     %.0f%%\n", stats.AvgUserShare*100)
	if stats.BestDuration > 0 {
		fmt.Printf("  Fastest:     %s\n", stats.BestDuration.Round(time.Second))
	}
	fmt.Printf("  Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	fmt.Println()
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
