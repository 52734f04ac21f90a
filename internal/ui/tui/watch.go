package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbemmel/labup/internal/bootstrap"
)

// Run wraps a bringup pipeline with the watch TUI. The pipeline runs in a
// background goroutine and reports through the observer passed to run; the
// TUI owns the terminal until the pipeline finishes or the user quits.
func Run(labName, topology string, phases []string, run func(bootstrap.Observer) error) error {
	m := NewWatchModel(labName, topology, phases)

	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		if err := run(NewObserver(p)); err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}
