package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/mcpserver"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagWebAddr  string
	flagMaxGames int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the REST, websocket and MCP HTTP server",
	Long: `Host 2048 games over HTTP.

Endpoints:
  GET    /api/health
  GET    /api/variants
  POST   /api/games              {"size": 4, "seed": 0}
  GET    /api/games
  GET    /api/games/{id}
  DELETE /api/games/{id}
  POST   /api/games/{id}/move    {"direction": "left"}
  POST   /api/games/{id}/reset
  GET    /ws?game={id}           state updates after every accepted move
  POST   /mcp                    MCP JSON-RPC

Examples:
  t2048 web
  t2048 web --addr :9000 --max-games 100`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (empty = from config)")
	webCmd.Flags().IntVar(&flagMaxGames, "max-games", 1000, "Maximum hosted games (0 = unlimited)")
}

// newManager builds the session manager shared by the network frontends.
func newManager(cfg config.T2048Config, store *storage.Store, logger *log.Logger) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithSpawn4Prob(cfg.Board.Spawn4Prob),
		session.WithDefaultSize(cfg.Board.Size),
		session.WithMaxGames(flagMaxGames),
	}
	if store != nil {
		opts = append(opts, session.WithStore(store))
	}
	return session.NewManager(opts...)
}

func runWeb(_ *cobra.Command, _ []string) {
	if err := serveWeb(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// serveWeb runs the HTTP server until a signal arrives or it fails.
func serveWeb() error {
	cfg := loadConfig()
	logger := newLogger(cfg, "t2048-web")

	addr := cfg.Server.WebAddr
	if flagWebAddr != "" {
		addr = flagWebAddr
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	sessions := newManager(cfg, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := web.NewHub(logger)
	go hub.Run(ctx)

	tools := mcpserver.New(sessions, version, logger)
	srv := web.NewServer(sessions, hub,
		web.WithLogger(logger),
		web.WithMCPHandler(tools.HTTPHandler()),
	)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		logger.Info("endpoints", "rest", "/api", "websocket", "/ws?game=<id>", "mcp", "/mcp")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}
