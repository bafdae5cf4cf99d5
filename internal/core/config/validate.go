package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/taskmgr/internal/core/styles"
)

// Validate checks that the configuration is valid. Errors are criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("storage.backend", c.Storage.Backend, isBackend),
		criterio.Run("storage.key", c.Storage.Key, notBlank),
		criterio.Run("storage.path", c.Storage.Path, isFileOrNotExist),
		criterio.Run("tui.theme", c.TUI.Theme, isTheme),
		c.validateDataDir(),
	)
}

// validateDataDir requires a data directory whenever a backend writes under it.
func (c *Config) validateDataDir() error {
	if c.Storage.Backend == BackendMemory || c.Storage.Path != "" {
		return nil
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return criterio.NewFieldErrors("data_dir", fmt.Errorf("required for the %s backend", c.Storage.Backend))
	}
	return nil
}

func isBackend(name string) error {
	if !slices.Contains(Backends, name) {
		return fmt.Errorf("unknown backend %q (want one of %s)", name, strings.Join(Backends, ", "))
	}
	return nil
}

func isTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// isFileOrNotExist accepts an empty path, a missing path, or an existing regular file.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
