package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/jbemmel/labup/internal/config"
	"github.com/jbemmel/labup/internal/observability"
	"github.com/jbemmel/labup/internal/platform/clab"
	"github.com/jbemmel/labup/internal/platform/docker"
	"github.com/jbemmel/labup/internal/platform/probe"
)

// State holds the shared results of bootstrap phases.
// It is progressively populated as each phase completes and is read
// by subsequent phases that need earlier results.
type State struct {
	// TopologyPath is the local topology file handed to containerlab
	// (populated by the fetch phase).
	TopologyPath string

	// TopologyCleanup removes a downloaded temp topology. Nil when the
	// topology was a local path all along.
	TopologyCleanup func()

	// Containers and TargetList are the latest discovery results.
	Containers []docker.Container
	TargetList string

	// Attempts counts probe attempts; Ready flips once all targets
	// answered.
	Attempts int
	Ready    bool
}

// NewState creates an empty bootstrap state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a bootstrap phase.
type Context struct {
	context.Context
	Config     *config.Config
	Timeouts   *config.Timeouts
	State      *State
	Runner     clab.Runner
	Discoverer docker.Discoverer
	Prober     probe.Prober
	Observer   Observer
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewContext creates a new bootstrap context with console output and
// no-op logging; callers swap in their own Observer, Logger, and
// Metrics as needed.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	runner clab.Runner,
	discoverer docker.Discoverer,
	prober probe.Prober,
) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		Timeouts:   config.LoadTimeouts(),
		State:      NewState(),
		Runner:     runner,
		Discoverer: discoverer,
		Prober:     prober,
		Observer:   NewConsoleObserver(),
		Logger:     zap.NewNop(),
	}
}
