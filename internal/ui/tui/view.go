package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jbemmel/labup/internal/ui/benchmarks"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)

	if len(m.Phases) > 0 {
		renderProgressBar(&b, m)
		renderPhases(&b, m)
	}

	renderTargets(&b, m)

	if len(m.Warnings) > 0 {
		renderWarnings(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("labup: %s", m.LabName)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Ready:
		status += readyStyle.Render("Ready")
	case m.Done:
		status += readyStyle.Render("Done")
	case m.Attempt > 0:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") +
			warningStyle.Render(fmt.Sprintf("waiting (attempt %d)", m.Attempt))
	default:
		status += dimStyle.Render("Bootstrapping...")
	}
	b.WriteString(status)
	b.WriteString("\n")

	if m.Topology != "" {
		b.WriteString(subtitleStyle.Render("  " + m.Topology))
		b.WriteString("\n")
	}
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case phase.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case phase.Done:
			icon = checkMark
			style = sf(readyStyle)
		case phase.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		extra := ""
		switch {
		case phase.Done && phase.Duration > 0:
			extra = dimStyle.Render(formatDuration(phase.Duration))
		case phase.Active && !phase.StartedAt.IsZero():
			elapsed := time.Since(phase.StartedAt)
			extra = dimStyle.Render(formatDuration(elapsed))
			if expected, ok := benchmarks.ExpectedDuration(phase.Name); ok {
				scaled := time.Duration(float64(expected) * m.PerformanceScale)
				extra += " " + phaseMiniBar(float64(elapsed)/float64(scaled))
			}
		}

		fmt.Fprintf(b, "    %s %-10s %s\n", style(icon), style(phase.Name), extra)
	}
}

func renderTargets(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Targets"))
	b.WriteString("\n")

	if len(m.Targets) == 0 {
		b.WriteString(dimStyle.Render("    (none discovered yet)"))
		b.WriteString("\n")
		return
	}

	var icon string
	var style styleFunc
	switch {
	case m.Ready:
		icon = checkMark
		style = sf(readyStyle)
	case m.Attempt > 0:
		icon = currentSpinner(m.SpinnerFrame)
		style = sf(activeStyle)
	default:
		icon = pending
		style = sf(dimStyle)
	}
	for _, target := range m.Targets {
		fmt.Fprintf(b, "    %s %s\n", style(icon), style(target))
	}

	if m.LastProbe != "" && !m.Ready {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(m.LastProbe))
	}
}

func renderWarnings(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Warnings"))
	b.WriteString("\n")

	// Show last 3 warnings
	start := 0
	if len(m.Warnings) > 3 {
		start = len(m.Warnings) - 3
	}
	for _, warning := range m.Warnings[start:] {
		fmt.Fprintf(b, "    %s %s\n", warningStyle.Render(warnMark), dimStyle.Render(warning))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	parts := []string{fmt.Sprintf("elapsed: %s", elapsed)}
	if m.Attempt > 0 {
		parts = append(parts, fmt.Sprintf("attempts: %d", m.Attempt))
	}
	pulse := ""
	if !m.Done && !m.Ready && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " waiting"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s%s  |  q: quit", strings.Join(parts, "  |  "), pulse)))
	b.WriteString("\n")
}

// Helper functions

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func phaseMiniBar(progress float64) string {
	const width = 10
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * width)
	if filled > width {
		filled = width
	}
	return progressBarFull.Render(strings.Repeat("█", filled)) + progressBarEmpty.Render(strings.Repeat("░", width-filled))
}

func calculateProgress(m Model) float64 {
	if m.Done || m.Ready {
		return 1.0
	}
	if len(m.Phases) == 0 {
		return 0
	}

	// Weight each phase by its benchmark duration so the bar does not crawl
	// through deploy and then leap across discover.
	var total, covered float64
	for _, phase := range m.Phases {
		expected := 30.0
		if secs, ok := benchmarks.DefaultTimings[phase.Name]; ok {
			expected = float64(secs)
		}
		total += expected

		switch {
		case phase.Done:
			covered += expected
		case phase.Active && !phase.StartedAt.IsZero():
			elapsed := time.Since(phase.StartedAt).Seconds()
			if elapsed > expected {
				elapsed = expected
			}
			covered += elapsed
		}
	}
	if total == 0 {
		return 0
	}

	progress := covered / total
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
