package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings
const (
	EnvBoard    = "WIPBOARD_BOARD"
	EnvLogLevel = "WIPBOARD_LOG_LEVEL"
	EnvMouse    = "WIPBOARD_MOUSE"
)

// Environ returns the variables from dir/.env overlaid with the process
// environment. The process environment wins.
func Environ(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, ".env"))
	if errors.Is(err, os.ErrNotExist) {
		env = map[string]string{}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	for _, key := range []string{EnvBoard, EnvLogLevel, EnvMouse} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides cfg with any recognised variables in env
func ApplyEnv(cfg *Config, env map[string]string) error {
	if v := env[EnvBoard]; v != "" {
		cfg.Board.Path = v
		cfg.Board.PathSet = true
	}
	if v := env[EnvLogLevel]; v != "" {
		cfg.Log.Level = v
	}
	if v := env[EnvMouse]; v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMouse, v, err)
		}
		cfg.UI.DisableMouse = !on
	}
	return nil
}
