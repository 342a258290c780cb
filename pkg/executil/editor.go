package executil

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const defaultEditor = "vi"

// EditorCommand resolves the editor from $VISUAL, then $EDITOR, then vi.
// The variable may carry arguments, as in "code --wait".
func EditorCommand(getenv func(string) string) (string, []string) {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(getenv(key)); len(fields) > 0 {
			return fields[0], fields[1:]
		}
	}
	return defaultEditor, nil
}

// EditText writes initial to a temporary file, opens it in the editor and
// returns the saved contents with trailing newlines removed.
func EditText(ctx context.Context, ex Executor, streams Streams, getenv func(string) string, initial string) (string, error) {
	f, err := os.CreateTemp("", "tasks-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	cmd, args := EditorCommand(getenv)
	if err := ex.RunInteractive(ctx, streams, cmd, append(args, path)...); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return strings.TrimRight(string(edited), "\n"), nil
}
