package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbemmel/labup/internal/ui/benchmarks"
)

// WatchPhase represents a bringup phase for display.
type WatchPhase struct {
	Name      string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Model is the Bubble Tea model for the watch dashboard.
type Model struct {
	// Lab info
	LabName  string
	Topology string

	// Bringup phases
	Phases     []WatchPhase
	PhasesDone bool

	// Discovery and probe state
	Targets   []string
	Attempt   int
	LastProbe string
	Ready     bool

	Warnings []string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewWatchModel creates a model for watching a bringup pipeline. The phase
// names must match the names the pipeline reports.
func NewWatchModel(labName, topology string, phases []string) Model {
	watch := make([]WatchPhase, 0, len(phases))
	for _, name := range phases {
		watch = append(watch, WatchPhase{Name: name})
	}
	return Model{
		LabName:          labName,
		Topology:         topology,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
		Phases:           watch,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case TargetsMsg:
		m.Targets = msg.Targets

	case ProbeMsg:
		m.Attempt = msg.Attempt
		m.LastProbe = msg.Message
		if msg.Ready {
			m.Ready = true
		}

	case WarningMsg:
		m.Warnings = append(m.Warnings, msg.Message)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Name == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		if !m.Phases[idx].StartedAt.IsZero() {
			m.Phases[idx].Duration = time.Since(m.Phases[idx].StartedAt)
		}
		if idx == len(m.Phases)-1 {
			m.PhasesDone = true
		}
	} else {
		m.Phases[idx].Active = true
		if m.Phases[idx].StartedAt.IsZero() {
			m.Phases[idx].StartedAt = time.Now()
		}
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func (m *Model) updateETA() {
	if m.Done || m.Ready {
		m.EstimatedRemaining = 0
		return
	}

	current := ""
	var phaseElapsed time.Duration
	var pending []string
	for _, phase := range m.Phases {
		switch {
		case phase.Active:
			current = phase.Name
			if !phase.StartedAt.IsZero() {
				phaseElapsed = time.Since(phase.StartedAt)
			}
		case !phase.Done:
			pending = append(pending, phase.Name)
		}
	}
	if current == "" && len(pending) == 0 {
		m.EstimatedRemaining = 0
		return
	}

	history := m.phaseHistory()
	m.PerformanceScale = benchmarks.PerformanceScale(current, phaseElapsed, history)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(current, phaseElapsed, pending, m.PerformanceScale)
}

func (m Model) phaseHistory() []benchmarks.PhaseTiming {
	var history []benchmarks.PhaseTiming
	for _, phase := range m.Phases {
		if phase.Done && phase.Duration > 0 {
			history = append(history, benchmarks.PhaseTiming{Phase: phase.Name, Duration: phase.Duration})
		}
	}
	return history
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
