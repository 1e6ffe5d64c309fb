//go:build windows

package main

import "os"

// Windows never delivers SIGTERM to a console process.
var shutdownSignals = []os.Signal{os.Interrupt}
