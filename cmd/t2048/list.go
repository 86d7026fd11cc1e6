package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows the board variants registered with t2048. Any other size can be played with 'play --size N'.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "-----")

	for _, g := range games {
		size := fmt.Sprintf("%dx%d", g.Size, g.Size)
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, g.ID, size, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a board.")
}
