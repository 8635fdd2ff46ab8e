package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the per-directory config file
const FileName = ".wipboard.json"

// Config represents the full wipboard configuration
type Config struct {
	Board BoardConfig `json:"board"`
	UI    UIConfig    `json:"ui"`
	Log   LogConfig   `json:"log"`
}

// BoardConfig contains board file settings
type BoardConfig struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"readOnly"` // disables autosave

	// PathSet is true when Path came from a config file or the environment
	// rather than the built-in default
	PathSet bool `json:"-"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	DisableMouse bool `json:"disableMouse"`
	ColumnWidth  int  `json:"columnWidth"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Board: BoardConfig{
			Path: "board.yaml",
		},
		UI: UIConfig{
			ColumnWidth: 30,
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".wipboard", "wipboard.log"),
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from dir with priority:
// 1. environment (including dir/.env)
// 2. .wipboard.json in dir (with version migration support)
// 3. defaults
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, FileName)
	if data, err := os.ReadFile(path); err == nil {
		parsed, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		cfg = MergeWithDefaults(parsed)
	}

	env, err := Environ(dir)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from an explicit file path. Unlike LoadConfig
// a missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	parsed, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg := MergeWithDefaults(parsed)

	env, err := Environ(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Board.Path == "" {
		cfg.Board.Path = defaults.Board.Path
	} else {
		cfg.Board.PathSet = true
	}

	if cfg.UI.ColumnWidth == 0 {
		cfg.UI.ColumnWidth = defaults.UI.ColumnWidth
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
