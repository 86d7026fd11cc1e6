package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg T2048Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, DefaultT2048Config())
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Size != 4 || cfg.Runtime.TickRate != 60 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Server.IdleTimeout() != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v", cfg.Server.IdleTimeout())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("board:\n  size: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Board.Size != 5 {
		t.Errorf("Board.Size = %d, want 5", cfg.Board.Size)
	}
	if cfg.Board.Spawn4Prob != 0.10 || cfg.Server.WebAddr != ":8080" {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want wrapped ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  size: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("size 1 error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "t2048.yaml"), []byte("board:\n  size: 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Board.Size != 6 {
		t.Errorf("Board.Size = %d, want 6 from ./configs", cfg.Board.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*T2048Config)
		ok     bool
	}{
		{"defaults", func(*T2048Config) {}, true},
		{"size 2", func(c *T2048Config) { c.Board.Size = 2 }, true},
		{"size 1", func(c *T2048Config) { c.Board.Size = 1 }, false},
		{"negative prob", func(c *T2048Config) { c.Board.Spawn4Prob = -0.1 }, false},
		{"prob above one", func(c *T2048Config) { c.Board.Spawn4Prob = 1.5 }, false},
		{"zero tick rate", func(c *T2048Config) { c.Runtime.TickRate = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"easy", 0.05},
		{"normal", 0.10},
		{"", 0.10},
		{"hard", 0.25},
	}

	for _, tt := range tests {
		preset, err := ParseDifficulty(tt.input)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q) failed: %v", tt.input, err)
		}
		cfg := DefaultT2048Config()
		ApplyT2048Preset(&cfg, preset)
		if cfg.Board.Spawn4Prob != tt.want {
			t.Errorf("preset %q spawn4_prob = %.2f, want %.2f", tt.input, cfg.Board.Spawn4Prob, tt.want)
		}
	}

	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseDifficulty(nightmare) error = %v", err)
	}
}
