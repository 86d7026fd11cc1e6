package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the built-in configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Size:       4,
			Spawn4Prob: 0.10,
		},
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			DBPath: "~/.arcade/t2048.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			WebAddr:            ":8080",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
