package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.Storage.Backend = "redis" },
			field:  "storage.backend",
		},
		{
			name:   "blank key",
			mutate: func(c *Config) { c.Storage.Key = "  " },
			field:  "storage.key",
		},
		{
			name:   "unknown theme",
			mutate: func(c *Config) { c.TUI.Theme = "solarized" },
			field:  "tui.theme",
		},
		{
			name:   "path is a directory",
			mutate: func(c *Config) { c.Storage.Path = c.DataDir },
			field:  "storage.path",
		},
		{
			name:   "missing data dir",
			mutate: func(c *Config) { c.DataDir = "" },
			field:  "data_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_MemoryBackendNeedsNoDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendMemory

	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Backend = "nope"
	cfg.TUI.Theme = "nope"

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}
