package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })
	log.Logger = zerolog.New(&buf)

	l := Component("db-watcher")
	l.Info().Msg("refreshing")

	entry := decode(t, &buf)
	assert.Equal(t, "db-watcher", entry["cmp"])
	assert.Equal(t, "refreshing", entry["message"])
}
