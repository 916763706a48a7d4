// Package progress implements the solver's observable event stream and
// cooperative cancellation token.
//
// Event delivery is synchronous with the solver: a Sink's OnProgress is
// called inline from the solver's goroutine, in strict generation order.
// Subscribers must not block.
package progress

import "github.com/google/uuid"

// Phase identifies which stage of generation an Event describes.
type Phase string

const (
	PhaseInit     Phase = "init"
	PhaseSolve    Phase = "solve"
	PhaseFinalize Phase = "finalize"
)

// Event is one point-in-time report emitted by the solver.
type Event struct {
	RunID   uuid.UUID
	Phase   Phase
	Percent float64
	Message string
}

// Sink receives Events. Implementations must not block — the solver calls
// OnProgress synchronously and a slow sink stalls generation.
type Sink interface {
	OnProgress(Event)
}

// FuncSink adapts a plain function to the Sink interface.
type FuncSink func(Event)

// OnProgress calls the wrapped function.
func (f FuncSink) OnProgress(e Event) {
	if f != nil {
		f(e)
	}
}

// NopSink discards every event. Useful as a default when the caller does
// not care about progress reporting.
var NopSink Sink = FuncSink(nil)

// CollectingSink accumulates every event it receives, in order. Intended for
// tests that assert on the reported sequence.
type CollectingSink struct {
	Events []Event
}

// OnProgress appends e to Events.
func (s *CollectingSink) OnProgress(e Event) {
	s.Events = append(s.Events, e)
}

// CancelSignal is a one-shot, observe-only cancellation handle.
// The zero value is a valid, never-cancelled signal.
type CancelSignal struct {
	ch chan struct{}
}

// NewCancelSignal returns a fresh, not-yet-fired signal together with the
// Cancel func a caller uses to fire it exactly once.
func NewCancelSignal() (*CancelSignal, func()) {
	s := &CancelSignal{ch: make(chan struct{})}
	var fired bool
	cancel := func() {
		if !fired {
			fired = true
			close(s.ch)
		}
	}
	return s, cancel
}

// Cancelled reports whether the signal has fired. Safe to poll repeatedly;
// this is the only operation the solver performs on a CancelSignal.
func (s *CancelSignal) Cancelled() bool {
	if s == nil || s.ch == nil {
		return false
	}
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
