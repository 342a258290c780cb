package executil

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		wantCmd  string
		wantArgs []string
	}{
		{"visual wins", map[string]string{"VISUAL": "nvim", "EDITOR": "nano"}, "nvim", []string{}},
		{"editor with args", map[string]string{"EDITOR": "code --wait"}, "code", []string{"--wait"}},
		{"blank falls through", map[string]string{"VISUAL": "  ", "EDITOR": "hx"}, "hx", []string{}},
		{"default", map[string]string{}, "vi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := EditorCommand(env(tt.vars))
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEditText(t *testing.T) {
	ex := &RecordingExecutor{
		OnRun: func(args []string) error {
			path := args[len(args)-1]
			body, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return os.WriteFile(path, append(body, []byte(" and eggs\n\n")...), 0o600)
		},
	}

	got, err := EditText(context.Background(), ex, Streams{}, env(map[string]string{"EDITOR": "ed -s"}), "milk")
	require.NoError(t, err)
	assert.Equal(t, "milk and eggs", got)

	require.Len(t, ex.Commands, 1)
	assert.Equal(t, "ed", ex.Commands[0].Cmd)
	assert.Equal(t, "-s", ex.Commands[0].Args[0])

	_, statErr := os.Stat(ex.Commands[0].Args[1])
	assert.True(t, os.IsNotExist(statErr), "temp file is removed")
}

func TestEditText_EditorFails(t *testing.T) {
	ex := &RecordingExecutor{OnRun: func([]string) error { return errors.New("exit status 1") }}

	_, err := EditText(context.Background(), ex, Streams{}, env(nil), "x")
	assert.ErrorContains(t, err, "exit status 1")
}
