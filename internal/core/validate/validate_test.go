package validate

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/task"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid title", "buy milk", false},
		{"surrounding spaces", "  call mom  ", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestTask(t *testing.T) {
	ok := task.New("pay rent", time.Now())
	assert.NoError(t, Task(ok))

	bad := task.Task{Title: " ", Priority: 7}
	err := Task(bad)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
	assert.Equal(t, "title", fieldErrs[0].Field)
	assert.ErrorIs(t, fieldErrs[0].Err, ErrTitleRequired)
}
