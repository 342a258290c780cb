package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the command name and task id from an event's context
// into the log line. Attach a context with zerolog's Event.Ctx.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if name := GetCommand(ctx); name != "" {
		e.Str("command", name)
	}

	if id := GetTaskID(ctx); id != 0 {
		e.Int64("task_id", id)
	}
}
