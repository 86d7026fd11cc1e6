// Package config provides YAML-based configuration loading for the 2048
// board, the terminal runtime, storage and the network servers.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// T2048Config contains all configuration for the game and its frontends.
type T2048Config struct {
	Board   BoardConfig   `yaml:"board"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig defines the board dimension and spawn behaviour.
type BoardConfig struct {
	Size       int     `yaml:"size"`
	Spawn4Prob float64 `yaml:"spawn4_prob"`
}

// RuntimeConfig defines terminal loop parameters.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// StorageConfig defines where scores are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines the server log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig defines listen addresses for the SSH and web servers.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	WebAddr            string `yaml:"web_addr"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Validate checks that the values can drive a game.
func (c T2048Config) Validate() error {
	if c.Board.Size < 2 {
		return fmt.Errorf("%w: board.size %d is below 2", ErrInvalidConfig, c.Board.Size)
	}
	if c.Board.Spawn4Prob < 0 || c.Board.Spawn4Prob > 1 {
		return fmt.Errorf("%w: board.spawn4_prob %.2f is outside [0, 1]", ErrInvalidConfig, c.Board.Spawn4Prob)
	}
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("%w: runtime.tick_rate %d must be positive", ErrInvalidConfig, c.Runtime.TickRate)
	}
	return nil
}
