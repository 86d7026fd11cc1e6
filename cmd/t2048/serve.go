package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the t2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the board picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  t2048 serve                           # Listen on the configured address
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, empty = from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (0 = from config)")
}

// sshServerConfig layers the loaded config and the serve flags over the
// server defaults.
func sshServerConfig(cfg config.T2048Config) tui.SSHServerConfig {
	sshCfg := tui.DefaultSSHServerConfig()
	if cfg.Server.SSHAddr != "" {
		sshCfg.Address = cfg.Server.SSHAddr
	}
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if cfg.Storage.DBPath != "" {
		sshCfg.DBPath = cfg.Storage.DBPath
	}
	sshCfg.IdleTimeout = cfg.Server.IdleTimeout()
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.TickRate = cfg.Runtime.TickRate
	sshCfg.Spawn4Prob = cfg.Board.Spawn4Prob
	sshCfg.BoardSize = cfg.Board.Size
	return sshCfg
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, "t2048-ssh")

	sshCfg := sshServerConfig(cfg)
	sshCfg.Logger = logger
	addr := sshCfg.Address

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting t2048 SSH server on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
