package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
//
// Files are decoded over DefaultT2048Config, so a partial file only
// overrides the keys it sets.
func Load(customPath string) (T2048Config, error) {
	cfg := DefaultT2048Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("t2048.yaml"), filepath.Join("configs", "t2048.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultT2048Config()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultT2048Config()
	if err := yaml.Unmarshal(defaultT2048YAML, &embedded); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
