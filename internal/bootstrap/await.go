package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AwaitPhase probes the lab until every target answers. It retries at
// a fixed interval, forever by default; the loop ends on success, on
// context cancellation, or when the optional overall Ready deadline
// expires.
type AwaitPhase struct{}

// Name implements Phase.
func (AwaitPhase) Name() string { return "await" }

// Run implements Phase.
func (AwaitPhase) Run(ctx *Context) error {
	interval := ctx.Config.Probe.RetryInterval()

	runCtx := ctx.Context
	if ctx.Timeouts.Ready > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, ctx.Timeouts.Ready)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		ctx.State.Attempts = attempt

		// containers may appear after deploy returned; keep looking
		// until discovery yields a target list
		if ctx.State.TargetList == "" {
			if err := discover(ctx, runCtx); err != nil {
				ctx.Logger.Debug("rediscovery failed", zap.Int("attempt", attempt), zap.Error(err))
			}
		}

		if ctx.State.TargetList == "" {
			notReady(ctx, attempt, errors.New("no containers discovered"))
		} else {
			start := time.Now()
			err := ctx.Prober.Probe(runCtx, ctx.State.TargetList)
			elapsed := time.Since(start)

			if err == nil {
				ctx.Metrics.RecordProbe(ctx.Config.Name, "ready", elapsed.Seconds())
				ctx.Metrics.SetReady(ctx.Config.Name, true)
				ctx.State.Ready = true
				ctx.Observer.Event(Event{
					Type:    EventProbeReady,
					Phase:   "await",
					Attempt: attempt,
					Targets: ctx.State.TargetList,
					Message: fmt.Sprintf("all targets ready after %d attempts", attempt),
				})
				ctx.Logger.Info("lab ready",
					zap.Int("attempts", attempt),
					zap.String("targets", ctx.State.TargetList))
				return nil
			}

			ctx.Metrics.RecordProbe(ctx.Config.Name, "not_ready", elapsed.Seconds())
			notReady(ctx, attempt, err)
		}

		select {
		case <-runCtx.Done():
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Timeouts.Ready > 0 {
				return fmt.Errorf("lab not ready after %v (%d attempts)", ctx.Timeouts.Ready, attempt)
			}
			return runCtx.Err()
		case <-time.After(interval):
		}
	}
}

// notReady reports a failed attempt. The console line carries the
// timestamp through the log package prefix.
func notReady(ctx *Context, attempt int, err error) {
	ctx.Observer.Event(Event{
		Type:    EventProbeNotReady,
		Phase:   "await",
		Attempt: attempt,
		Targets: ctx.State.TargetList,
		Message: fmt.Sprintf("not ready yet (attempt %d): %v", attempt, err),
	})
	ctx.Logger.Debug("probe attempt failed", zap.Int("attempt", attempt), zap.Error(err))
}
