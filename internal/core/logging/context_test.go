package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "add")
	assert.Equal(t, "add", GetCommand(ctx))
}

func TestWithTaskID(t *testing.T) {
	ctx := WithTaskID(context.Background(), 42)
	assert.Equal(t, int64(42), GetTaskID(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCommand(ctx))
	assert.Zero(t, GetTaskID(ctx))
}
