// Package tui provides a Bubble Tea-based terminal UI for watching lab bringup.
package tui

// PhaseMsg reports progress of a bringup phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// TargetsMsg carries the container names discovery produced.
type TargetsMsg struct {
	Targets []string
}

// ProbeMsg reports the outcome of a readiness probe attempt.
type ProbeMsg struct {
	Attempt int
	Ready   bool
	Message string
}

// WarningMsg carries a non-fatal problem the pipeline continued past.
type WarningMsg struct {
	Message string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the pipeline is complete.
type DoneMsg struct{}
