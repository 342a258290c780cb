package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/app"
)

func TestRoot(t *testing.T) {
	root := Root(&Flags{}, &app.App{})

	names := map[string]bool{}
	for _, c := range root.Commands {
		require.False(t, names[c.Name], "duplicate command %q", c.Name)
		names[c.Name] = true
	}

	for _, want := range []string{"add", "ls", "show", "done", "edit", "rm", "clear", "import", "theme", "config", "doctor"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	assert.NotNil(t, root.Action, "bare invocation opens the TUI")

	flagNames := map[string]bool{}
	for _, f := range root.Flags {
		for _, n := range f.Names() {
			require.False(t, flagNames[n], "duplicate flag %q", n)
			flagNames[n] = true
		}
	}
	for _, want := range []string{"config", "data-dir", "log-level", "log-file", "sort", "expand", "match"} {
		assert.True(t, flagNames[want], "missing flag %q", want)
	}
}
