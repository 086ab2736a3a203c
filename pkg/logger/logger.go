// Package logger builds the zerolog loggers used across the client. Every
// subsystem takes a zerolog.Logger so diagnostics (token decode failures,
// 401 escalations, stale-response discards) go to one place.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0o664

type Build struct {
	writer  io.Writer
	path    string
	level   zerolog.Level
	console bool
}

// New starts a logger build. Without further configuration Make produces a
// stderr logger at info level.
func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

// FromPath appends log output to the file at path, creating it if needed.
func (build *Build) FromPath(path string) *Build {
	build.path = path
	return build
}

// FromBuffer writes log output to w instead of stderr.
func (build *Build) FromBuffer(w io.Writer) *Build {
	build.writer = w
	return build
}

// Level sets the minimum level emitted.
func (build *Build) Level(level zerolog.Level) *Build {
	build.level = level
	return build
}

// Console enables human-readable console formatting, for the CLI entry point.
func (build *Build) Console() *Build {
	build.console = true
	return build
}

// Make finalizes the build into a ready logger.
func (build *Build) Make() (zerolog.Logger, error) {
	var writer io.Writer = os.Stderr
	if build.writer != nil {
		writer = build.writer
	}
	if build.path != "" {
		file, err := os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), err
		}
		writer = zerolog.SyncWriter(file)
	}
	if build.console {
		writer = zerolog.ConsoleWriter{Out: writer}
	}
	return zerolog.New(writer).Level(build.level).With().Timestamp().Logger(), nil
}
