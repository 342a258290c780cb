package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	taskIDKey  contextKey = "task_id"
)

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithTaskID adds the id of the task being operated on to the context.
func WithTaskID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// GetTaskID retrieves the task id from the context.
// Returns 0 if not present.
func GetTaskID(ctx context.Context) int64 {
	if id, ok := ctx.Value(taskIDKey).(int64); ok {
		return id
	}
	return 0
}
