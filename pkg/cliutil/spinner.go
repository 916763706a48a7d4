package cliutil

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"github.com/hollowforge/wfcmap/pkg/progress"
)

// Spinner animates while a solve runs, driven directly by the progress
// events the solver emits.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with a starting message.
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	_ = s.Color("cyan", "bold")
	return &Spinner{s: s}
}

// Start starts the spinner unless verbose mode is on (verbose output and an
// animated spinner fight over the same terminal line).
func (s *Spinner) Start() {
	if !VerboseEnabled {
		s.s.Start()
	}
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	s.s.Stop()
}

// Sink adapts the spinner to progress.Sink: every event updates the
// spinner's suffix with the current phase and percentage instead of
// printing a line, so solve-phase progress doesn't scroll the terminal.
func (s *Spinner) Sink() progress.Sink {
	return progress.FuncSink(func(e progress.Event) {
		if VerboseEnabled {
			if e.Message != "" {
				Verbose("%s %.0f%%: %s", e.Phase, e.Percent, e.Message)
			} else {
				Verbose("%s %.0f%%", e.Phase, e.Percent)
			}
			return
		}
		s.s.Suffix = fmt.Sprintf(" %s: %.0f%%", e.Phase, e.Percent)
	})
}
