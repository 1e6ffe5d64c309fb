package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and terminal detection.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	TermWidth func() int // 0 when stdout is not a terminal
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		TermWidth: stdoutWidth,
	}
}

// stdoutWidth returns the terminal width of stdout, or 0 when stdout is
// redirected.
func stdoutWidth() int {
	fd := int(os.Stdout.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
