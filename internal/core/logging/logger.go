// Package logging carries the taskmgr log conventions: per-component loggers
// and command/task fields pulled from the context.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Install makes l the global logger with ContextHook attached.
func Install(l zerolog.Logger) {
	log.Logger = l.Hook(ContextHook{})
}

// Component returns the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
