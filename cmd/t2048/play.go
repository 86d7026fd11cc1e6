package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSize       int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start playing the given board variant. Without a variant or --size the
board picker menu opens.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  P                - Pause
  Esc/B            - Pause, then back
  R                - Restart
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 25%

Examples:
  t2048 play 2048
  t2048 play 2048_3x3 --difficulty hard
  t2048 play --size 7
  t2048 play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the board picker menu",
	Long: `Start t2048 in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to size the custom board and
Enter to play. Tab opens the scoreboard. After a board you return to the menu.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg := playConfig()
		runMenuLoop(cfg)
	},
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size N for an NxN board (0 = variant or menu)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// playConfig loads config and applies the difficulty preset.
func playConfig() config.T2048Config {
	cfg := loadConfig()
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplyT2048Preset(&cfg, preset)
	}
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := playConfig()

	var game registry.Game
	switch {
	case len(args) == 1:
		created, err := registry.Create(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
			os.Exit(1)
		}
		game = created
	case flagSize != 0:
		if flagSize < engine.MinSize {
			fmt.Fprintf(os.Stderr, "Error: board size must be at least %d\n", engine.MinSize)
			os.Exit(1)
		}
		game = tui.NewGameForSize(flagSize)
	default:
		runMenuLoop(cfg)
		return
	}

	store := openStore(cfg, nil)

	width, height := terminalSize()
	runErr := tui.Run(game, store, runtimeConfig(cfg, width, height), nil)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runMenuLoop alternates between the menu, a board and the scoreboard.
func runMenuLoop(cfg config.T2048Config) {
	store := openStore(cfg, nil)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := terminalSize()
	rc := runtimeConfig(cfg, width, height)

	for {
		result, err := tui.RunMenu(store, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := runScoreboard(store, rc)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game := tui.NewGameForSize(result.Size)

		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, rc, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

func runScoreboard(store *storage.Store, rc core.RuntimeConfig) (bool, error) {
	return tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
}

// terminalSize returns the stdout size, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
