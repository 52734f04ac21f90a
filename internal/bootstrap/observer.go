package bootstrap

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives progress output from the bootstrap pipeline.
type Observer interface {
	// Printf emits an unstructured, human-readable line.
	Printf(format string, v ...interface{})

	// Event emits a structured bootstrap event.
	Event(event Event)
}

// Event represents a structured bootstrap event.
type Event struct {
	Type      EventType // Type of event
	Phase     string    // Phase name (e.g., "deploy", "await")
	Message   string    // Human-readable message
	Attempt   int       // Probe attempt number, when applicable
	Targets   string    // Comma-separated target list, when applicable
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of bootstrap event.
type EventType string

const (
	// EventPhaseStarted indicates a bootstrap phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a bootstrap phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a bootstrap phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventWarning indicates a non-fatal problem the pipeline continues past.
	EventWarning EventType = "warning"

	// EventTargetsFound indicates discovery produced a target list.
	EventTargetsFound EventType = "targets.found"

	// EventProbeNotReady indicates a probe attempt failed.
	EventProbeNotReady EventType = "probe.not_ready"
	// EventProbeReady indicates all targets answered the probe.
	EventProbeReady EventType = "probe.ready"
)

// ConsoleObserver implements Observer using the standard log package,
// so every line carries a timestamp.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	log.Print(formatEvent(event))
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	parts = append(parts, event.Message)
	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogWarning logs a non-fatal problem.
func LogWarning(observer Observer, phase string, message string) {
	observer.Event(Event{
		Type:    EventWarning,
		Phase:   phase,
		Message: message,
	})
}

// LogTargetsFound logs the target list produced by discovery.
func LogTargetsFound(observer Observer, phase, targets string, count int) {
	observer.Event(Event{
		Type:    EventTargetsFound,
		Phase:   phase,
		Targets: targets,
		Message: fmt.Sprintf("found %d containers: %s", count, targets),
	})
}
