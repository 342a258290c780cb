package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing. When OnRun is set it is
// called with the arguments, so a test can play the part of the editor.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	OnRun func(args []string) error
}

var _ Executor = (*RecordingExecutor)(nil)

// RunInteractive records the command and runs OnRun.
func (e *RecordingExecutor) RunInteractive(_ context.Context, _ Streams, cmd string, args ...string) error {
	e.mu.Lock()
	e.Commands = append(e.Commands, RecordedCommand{Cmd: cmd, Args: args})
	onRun := e.OnRun
	e.mu.Unlock()

	if onRun != nil {
		return onRun(args)
	}
	return nil
}
