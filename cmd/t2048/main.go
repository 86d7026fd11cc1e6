// t2048 plays the 2048 sliding-tile puzzle in the terminal and serves it
// over SSH, HTTP and MCP.
//
// Usage:
//
//	t2048 list               - List board variants
//	t2048 play [variant]     - Play a board (menu when no variant is given)
//	t2048 menu               - Board picker menu
//	t2048 scores [variant]   - Show high scores for a board
//	t2048 serve              - Start SSH server for remote play
//	t2048 web                - Start REST + websocket + MCP HTTP server
//	t2048 mcp                - Serve MCP tools over stdio
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--fps <rate>        - Set tick rate (default from config: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default from config)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// version is reported to MCP clients.
var version = "dev"

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal, over SSH and over HTTP",
	Long: `t2048 is the 2048 sliding-tile puzzle. Slide the board in one of four
directions; equal tiles merge and a new tile appears after every move.

Available commands:
  list     - Show all board variants
  play     - Play a board directly
  menu     - Interactive board picker
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start REST, websocket and MCP endpoints
  mcp      - Serve MCP tools over stdio

Examples:
  t2048 play
  t2048 play 2048_5x5
  t2048 play --size 7 --difficulty hard
  t2048 serve --ssh :2222
  t2048 web --addr :8080
  t2048 scores 2048`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (empty = from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig() config.T2048Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

// newLogger builds the stderr logger used by the servers.
func newLogger(cfg config.T2048Config, prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the scores database; failures downgrade to no persistence.
func openStore(cfg config.T2048Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		if logger != nil {
			logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		}
		return nil
	}
	return store
}

// runtimeConfig builds the per-board runtime settings for a terminal.
func runtimeConfig(cfg config.T2048Config, width, height int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW = width
	rc.ScreenH = height
	rc.TickRate = cfg.Runtime.TickRate
	rc.Seed = flagSeed
	rc.Spawn4Prob = cfg.Board.Spawn4Prob
	rc.BoardSize = cfg.Board.Size
	return rc
}
