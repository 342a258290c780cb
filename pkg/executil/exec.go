// Package executil runs external programs on behalf of commands, most
// notably the user's editor.
package executil

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Streams are the standard streams handed to an interactive program.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Executor runs external commands.
type Executor interface {
	// RunInteractive runs cmd attached to the given streams and waits for it
	// to exit.
	RunInteractive(ctx context.Context, streams Streams, cmd string, args ...string) error
}

// RealExecutor calls actual programs.
type RealExecutor struct{}

var _ Executor = (*RealExecutor)(nil)

// RunInteractive runs cmd attached to streams.
func (e *RealExecutor) RunInteractive(ctx context.Context, streams Streams, cmd string, args ...string) error {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdin = streams.In
	c.Stdout = streams.Out
	c.Stderr = streams.Err
	if err := c.Run(); err != nil {
		return fmt.Errorf("exec %s: %w", cmd, err)
	}
	return nil
}
