package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbemmel/labup/internal/bootstrap"
	"github.com/jbemmel/labup/internal/platform/probe"
)

// sender is the part of tea.Program the observer needs.
type sender interface {
	Send(tea.Msg)
}

// Observer forwards bootstrap events into a running Bubble Tea program.
// Unstructured Printf lines are dropped: the alternate screen has no
// scrollback for them, and every state change also arrives as an event.
type Observer struct {
	program sender
}

// NewObserver creates an observer that feeds the given program.
func NewObserver(p *tea.Program) *Observer {
	return &Observer{program: p}
}

// Printf implements bootstrap.Observer.
func (o *Observer) Printf(string, ...interface{}) {}

// Event implements bootstrap.Observer.
func (o *Observer) Event(event bootstrap.Event) {
	switch event.Type {
	case bootstrap.EventPhaseStarted:
		o.program.Send(PhaseMsg{Phase: phaseKey(event.Phase)})
	case bootstrap.EventPhaseCompleted:
		o.program.Send(PhaseMsg{Phase: phaseKey(event.Phase), Done: true})
	case bootstrap.EventPhaseFailed:
		o.program.Send(PhaseMsg{Phase: phaseKey(event.Phase), Err: errors.New(event.Message)})
	case bootstrap.EventWarning:
		o.program.Send(WarningMsg{Message: event.Message})
	case bootstrap.EventTargetsFound:
		o.program.Send(TargetsMsg{Targets: probe.SplitTargets(event.Targets)})
	case bootstrap.EventProbeNotReady:
		o.program.Send(ProbeMsg{Attempt: event.Attempt, Message: event.Message})
	case bootstrap.EventProbeReady:
		o.program.Send(ProbeMsg{Attempt: event.Attempt, Ready: true})
	}
}

// phaseKey strips the "(i/n)" counter the pipeline appends to phase names.
func phaseKey(phase string) string {
	key, _, _ := strings.Cut(phase, " (")
	return key
}
