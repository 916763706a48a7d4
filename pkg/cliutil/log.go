// Package cliutil holds the small logging and spinner helpers shared by
// cmd/wfcgen's subcommands. Nothing here is imported by the solver core.
package cliutil

import (
	"fmt"
	"os"
)

// VerboseEnabled gates Verbose output; set from the root command's
// --verbose persistent flag.
var VerboseEnabled = false

// Info prints a message to stdout, regardless of verbose mode.
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// Verbose prints a message only when VerboseEnabled is true.
func Verbose(format string, args ...interface{}) {
	if VerboseEnabled {
		fmt.Println("[verbose] " + fmt.Sprintf(format, args...))
	}
}

// Warning prints a warning message to stdout.
func Warning(format string, args ...interface{}) {
	fmt.Println("warning: " + fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, "error: "+fmt.Sprintf(format, args...))
}
