package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/taskmgr/internal/core/config"
	"github.com/hay-kot/taskmgr/internal/core/logging"
	"github.com/hay-kot/taskmgr/internal/core/styles"
	"github.com/hay-kot/taskmgr/internal/core/task"
	"github.com/hay-kot/taskmgr/internal/data/stores"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Storage    string // overrides storage.backend when set

	ProfilerPort int

	config *config.Config
	tasks  *task.Store
	closer func() error
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskmgr", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskmgr")
}

// LogFilePath returns the explicit log file or <data-dir>/taskmgr.log.
func (f *Flags) LogFilePath() string {
	if f.LogFile != "" {
		return f.LogFile
	}
	return filepath.Join(f.DataDir, "taskmgr.log")
}

// Config loads the config file once with the --storage override applied.
func (f *Flags) Config() (*config.Config, error) {
	if f.config != nil {
		return f.config, nil
	}

	cfg, err := config.Load(f.ConfigPath, f.DataDir, config.WithBackend(f.Storage))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	f.config = cfg
	return cfg, nil
}

// Tasks opens the configured storage backend and returns the loaded task
// store. The store is opened once per process; Close releases it.
func (f *Flags) Tasks(ctx context.Context) (*task.Store, error) {
	if f.tasks != nil {
		return f.tasks, nil
	}

	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	// validation ensures the theme name is known
	palette, _ := styles.GetPalette(cfg.TUI.Theme)
	styles.SetTheme(palette)

	backing, closer, err := stores.Open(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		return nil, err
	}

	s := task.NewStore(task.NewKVStorage(backing, cfg.Storage.Key), logging.Component("task-store"))
	if err := s.Load(ctx); err != nil {
		_ = closer()
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	f.tasks = s
	f.closer = closer
	return s, nil
}

// Close releases the storage backend if Tasks opened one.
func (f *Flags) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer()
	f.closer = nil
	f.tasks = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
