package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a new logger that writes JSON to the specified file.
// If file is empty, logs are written to stdout.
//
// When console is non-nil, warnings and errors are also written to it in
// zerolog's human-readable console format, whatever the file level.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string, console io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	// File Setup
	var writer io.Writer = os.Stdout
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	out := zerolog.LevelWriter(&zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: writer},
		Level:  lvl,
	})
	if console != nil {
		out = zerolog.MultiLevelWriter(out, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{
				Out:          console,
				NoColor:      true,
				PartsExclude: []string{zerolog.TimestampFieldName},
			}},
			Level: zerolog.WarnLevel,
		})
	}

	// The logger level is the lower of the two so warnings reach the console
	// even when the file is at error.
	loggerLvl := lvl
	if console != nil && zerolog.WarnLevel < loggerLvl {
		loggerLvl = zerolog.WarnLevel
	}

	l := zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(loggerLvl)

	return l, closer, nil
}
