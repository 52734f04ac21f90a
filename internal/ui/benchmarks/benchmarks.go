// Package benchmarks provides timing estimates for lab bringup phases.
package benchmarks

import "time"

// DefaultTimings are median durations from bringup runs of small SR Linux
// topologies (seconds). Deploy dominates while the NOS containers start;
// await covers the gap until gNMI answers.
var DefaultTimings = map[string]int{
	"fetch":    3,
	"deploy":   75,
	"discover": 2,
	"await":    90,
	"destroy":  30,
}

// PhaseTiming records how long a completed phase took.
type PhaseTiming struct {
	Phase    string
	Duration time.Duration
}

// ExpectedDuration returns the benchmark duration for a phase.
func ExpectedDuration(phase string) (time.Duration, bool) {
	secs, ok := DefaultTimings[phase]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// EstimateRemaining calculates the estimated time remaining given the current
// phase, its elapsed time, and the phases still pending after it.
func EstimateRemaining(currentPhase string, phaseElapsed time.Duration, pending []string, history []PhaseTiming) time.Duration {
	return EstimateRemainingWithScale(currentPhase, phaseElapsed, pending, PerformanceScale(currentPhase, phaseElapsed, history))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(currentPhase string, phaseElapsed time.Duration, pending []string, scale float64) time.Duration {
	var remaining time.Duration

	// For the current phase: max(0, expected - elapsed)
	if expected, ok := ExpectedDuration(currentPhase); ok {
		expectedDur := time.Duration(float64(expected) * scale)
		if expectedDur > phaseElapsed {
			remaining += expectedDur - phaseElapsed
		}
	}

	for _, phase := range pending {
		if expected, ok := ExpectedDuration(phase); ok {
			remaining += time.Duration(float64(expected) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 75s, observed 150s => scale=2.0 (future ETAs are stretched).
func PerformanceScale(currentPhase string, phaseElapsed time.Duration, history []PhaseTiming) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for _, rec := range history {
		expected, ok := ExpectedDuration(rec.Phase)
		if !ok {
			continue
		}
		expectedTotal += expected
		actualTotal += rec.Duration
	}

	// If the current phase is overrunning, fold it in immediately so the ETA
	// adapts quickly.
	if expected, ok := ExpectedDuration(currentPhase); ok && phaseElapsed > expected {
		expectedTotal += expected
		actualTotal += phaseElapsed
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}
