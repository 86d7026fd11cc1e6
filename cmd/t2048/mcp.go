package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve 2048 tools over MCP stdio",
	Long: `Run an MCP server on stdin/stdout so an agent can play.

Tools: new_game, take_turn, game_state, list_games, reset_game.
Logs go to stderr; stdout carries the protocol.

Example client config:
  {"command": "t2048", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	Run:  runMCP,
}

func runMCP(_ *cobra.Command, _ []string) {
	if err := serveMCP(); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}

func serveMCP() error {
	cfg := loadConfig()
	logger := newLogger(cfg, "t2048-mcp")

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	sessions := newManager(cfg, store, logger)
	tools := mcpserver.New(sessions, version, logger)

	logger.Info("serving MCP over stdio")
	return tools.ServeStdio()
}
