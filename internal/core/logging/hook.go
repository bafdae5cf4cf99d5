package logging

import (
	"github.com/rs/zerolog"
)

// ContextHook copies the command name and task id stored by WithCommand and
// WithTaskID onto events logged with Ctx.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	fields := map[string]string{
		"command": GetCommand(ctx),
		"task_id": GetTaskID(ctx),
	}
	for k, v := range fields {
		if v != "" {
			e.Str(k, v)
		}
	}
}
