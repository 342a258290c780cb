// Package logging holds small zerolog helpers shared by commands and services.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger from the global logger tagged with a component
// name under the "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
