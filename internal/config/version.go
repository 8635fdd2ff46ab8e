package config

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 2

// VersionedConfig wraps a Config with a version field for migrations
type VersionedConfig struct {
	Version int     `json:"version"`
	Config  *Config `json:"config,omitempty"`

	// Inline config fields, used when the file is a flat config
	Board BoardConfig `json:"board,omitempty"`
	UI    UIConfig    `json:"ui,omitempty"`
	Log   LogConfig   `json:"log,omitempty"`
}

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]interface{}) (map[string]interface{}, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: Add version field, no structural changes
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			data["version"] = 1
			return data, nil
		},
	},
	// Migration 1 -> 2: flat keys move into board/ui/log sections
	{
		FromVersion: 1,
		ToVersion:   2,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			board := section(data, "board")
			ui := section(data, "ui")
			logCfg := section(data, "log")

			if v, ok := data["boardPath"]; ok {
				board["path"] = v
				delete(data, "boardPath")
			}
			if v, ok := data["mouse"].(bool); ok {
				ui["disableMouse"] = !v
				delete(data, "mouse")
			}
			if v, ok := data["logLevel"]; ok {
				logCfg["level"] = v
				delete(data, "logLevel")
			}
			if v, ok := data["logFile"]; ok {
				logCfg["path"] = v
				delete(data, "logFile")
			}

			data["board"] = board
			data["ui"] = ui
			data["log"] = logCfg
			data["version"] = 2
			return data, nil
		},
	},
}

func section(data map[string]interface{}, key string) map[string]interface{} {
	if m, ok := data[key].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// ParseVersionedConfig parses config data with version migration support
func ParseVersionedConfig(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	var versioned VersionedConfig
	if err := json.Unmarshal(migratedData, &versioned); err != nil {
		return nil, fmt.Errorf("failed to parse versioned config: %w", err)
	}

	if versioned.Config != nil {
		return versioned.Config, nil
	}

	return &Config{
		Board: versioned.Board,
		UI:    versioned.UI,
		Log:   versioned.Log,
	}, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]interface{}, fromVersion int) (map[string]interface{}, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config with version information
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var cfgMap map[string]interface{}
	if err := json.Unmarshal(cfgData, &cfgMap); err != nil {
		return nil, err
	}

	// Add version at the top
	result := make(map[string]interface{})
	result["version"] = CurrentVersion
	for k, v := range cfgMap {
		result[k] = v
	}

	return json.MarshalIndent(result, "", "  ")
}
