package bootstrap

import (
	"fmt"
	"time"
)

// Phase defines the interface for a bootstrap phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the phase.
	Run(ctx *Context) error
}

// RunPhases executes all bootstrap phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Bootstrapping lab %q with %d phases...", ctx.Config.Name, len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		err := phase.Run(ctx)
		ctx.Metrics.RecordPhase(ctx.Config.Name, phase.Name(), time.Since(phaseStart).Seconds())
		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("All phases completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
