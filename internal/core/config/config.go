// Package config handles configuration loading and validation for taskmgr.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/taskmgr/internal/core/styles"
	"github.com/hay-kot/taskmgr/internal/core/task"
)

// Storage backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists the supported storage backends.
var Backends = []string{BackendSQLite, BackendFile, BackendMemory}

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, or memory
	Key     string `yaml:"key"`     // key the list is stored under
	Path    string `yaml:"path"`    // optional file location; defaults under the data dir
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Key:     task.DefaultKey,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Option adjusts a loaded Config before it is validated.
type Option func(*Config)

// WithBackend overrides storage.backend. An empty name keeps the file's value.
func WithBackend(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Storage.Backend = name
		}
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Options are applied after defaults and before validation.
func Load(configPath, dataDir string, opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.applyDefaults()

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// StoragePath returns the file the selected backend writes to. Empty for the memory backend.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "tasks.db")
	case BackendFile:
		return filepath.Join(c.DataDir, "tasks.json")
	default:
		return ""
	}
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
