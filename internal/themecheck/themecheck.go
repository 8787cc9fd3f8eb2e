// Package themecheck implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package themecheck

import (
	"io"

	"go.followtheprocess.codes/log"
)

// App represents the themecheck program.
type App struct {
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [App].
func New(debug bool, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.WithLevel(level)).Prefixed("themecheck")

	return App{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}
