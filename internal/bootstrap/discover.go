package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DiscoverPhase asks the container runtime for the lab's containers
// and records the probe target list.
type DiscoverPhase struct{}

// Name implements Phase.
func (DiscoverPhase) Name() string { return "discover" }

// Run implements Phase. A discovery failure or an empty result is not
// fatal here: containers may still be starting, and the await phase
// re-runs discovery while the target list stays empty.
func (DiscoverPhase) Run(ctx *Context) error {
	if err := discover(ctx, ctx.Context); err != nil {
		LogWarning(ctx.Observer, "discover", fmt.Sprintf("discovery failed, continuing: %v", err))
		ctx.Logger.Warn("discovery failed, continuing", zap.Error(err))
		return nil
	}

	if ctx.State.TargetList == "" {
		LogWarning(ctx.Observer, "discover", "no containers found yet")
	}
	return nil
}

// discover runs one discovery pass and stores the result in State.
func discover(ctx *Context, parent context.Context) error {
	discoverCtx, cancel := context.WithTimeout(parent, ctx.Timeouts.Discover)
	defer cancel()

	containers, err := ctx.Discoverer.Discover(discoverCtx, ctx.Config.Selector())
	if err != nil {
		return err
	}

	ctx.State.Containers = containers
	ctx.State.TargetList = Join(containers)
	ctx.Metrics.SetTargets(ctx.Config.Name, len(containers))

	if len(containers) > 0 {
		LogTargetsFound(ctx.Observer, "discover", ctx.State.TargetList, len(containers))
		ctx.Logger.Debug("discovered containers",
			zap.Int("count", len(containers)),
			zap.String("targets", ctx.State.TargetList))
	}
	return nil
}
