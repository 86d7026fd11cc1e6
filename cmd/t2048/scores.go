package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a board",
	Long: `Display the top 10 scores and the best score for the given board
(default: the classic 4x4 board). Custom sizes are named 2048_NxN.

Examples:
  t2048 scores
  t2048 scores 2048_5x5
  t2048 scores 2048_7x7
  t2048 scores 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the board")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := t2048.Variants[0].ID
	if len(args) == 1 {
		gameID = args[0]
	}

	if err := showScores(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores(gameID string) error {
	title := gameID
	if info, err := registry.Lookup(gameID); err == nil {
		title = info.Title
	}

	cfg := loadConfig()
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, entry.Score, entry.MaxTile, entry.Moves, dateStr)
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
