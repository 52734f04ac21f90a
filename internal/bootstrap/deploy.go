package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DeployPhase runs containerlab deploy for the resolved topology.
type DeployPhase struct{}

// Name implements Phase.
func (DeployPhase) Name() string { return "deploy" }

// Run implements Phase. A failed deploy is reported as a warning but
// does not stop the pipeline: the most common cause is a lab that is
// already running, and the readiness gate decides either way.
func (DeployPhase) Run(ctx *Context) error {
	deployCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Deploy)
	defer cancel()

	out, err := ctx.Runner.Deploy(deployCtx, ctx.State.TopologyPath, ctx.Config.DeployArgs...)
	if err != nil {
		LogWarning(ctx.Observer, "deploy", fmt.Sprintf("deploy failed, continuing: %v", err))
		ctx.Logger.Warn("deploy failed, continuing", zap.Error(err))
		return nil
	}

	ctx.Logger.Debug("deploy finished", zap.String("output", out))
	return nil
}

// DestroyPhase runs containerlab destroy for the resolved topology.
// Destroy failures are fatal.
type DestroyPhase struct{}

// Name implements Phase.
func (DestroyPhase) Name() string { return "destroy" }

// Run implements Phase.
func (DestroyPhase) Run(ctx *Context) error {
	destroyCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Destroy)
	defer cancel()

	out, err := ctx.Runner.Destroy(destroyCtx, ctx.State.TopologyPath, ctx.Config.DestroyArgs...)
	if err != nil {
		return err
	}

	ctx.Logger.Debug("destroy finished", zap.String("output", out))
	return nil
}
