package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in pictures",
	Long:  `Shows the pictures registered in bubbles and the available themes.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	pictures := registry.List()

	if len(pictures) == 0 {
		fmt.Println("No pictures available.")
		return
	}

	fmt.Println("Built-in pictures:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range pictures {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print pictures
	for _, p := range pictures {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Printf("Themes: %s\n", strings.Join(tui.ThemeNames(), ", "))
	fmt.Println()
	fmt.Println("Use 'bubbles play <picture>' or 'bubbles play <image file>' to start.")
}
