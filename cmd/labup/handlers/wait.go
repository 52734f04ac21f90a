package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jbemmel/labup/internal/bootstrap"
	"github.com/jbemmel/labup/internal/config"
	"github.com/jbemmel/labup/internal/util/prerequisites"
)

// WaitOptions bundles the flags of the wait command.
type WaitOptions struct {
	ConfigPath  string
	Topology    string
	Watch       bool
	Timeout     time.Duration
	MetricsAddr string
}

// Wait blocks until an already-running lab answers the readiness probe.
//
// No deployment happens. The lab's containers are discovered from the
// container runtime and probed together until the management plane
// answers, or the deadline passes. A missing config file is not an
// error here: the defaults match any containerlab lab on the host.
func Wait(ctx context.Context, opts WaitOptions) error {
	cfg, err := loadLabConfig(opts.ConfigPath, opts.Topology, true)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(cfg, false, waitTools(cfg)); err != nil {
		return err
	}

	log.Printf("Waiting for lab %q", cfg.Name)

	phases := []bootstrap.Phase{
		bootstrap.DiscoverPhase{},
		bootstrap.AwaitPhase{},
	}

	bctx, err := runPipelineWithUI(ctx, cfg, phases, runOptions{
		Watch:       opts.Watch,
		Timeout:     opts.Timeout,
		MetricsAddr: opts.MetricsAddr,
	})
	if err != nil {
		return err
	}

	printWaitSuccess(bctx)
	return nil
}

// waitTools lists the binaries discovery and probing need.
func waitTools(cfg *config.Config) []prerequisites.Tool {
	var tools []prerequisites.Tool
	if cfg.GetDiscovery() == config.DiscoveryCLI {
		tools = append(tools, prerequisites.DiscoveryTools(string(cfg.GetRuntime()))...)
	}
	if cfg.Probe.GetMode() == config.ProbeGNMI {
		tools = append(tools, prerequisites.ProbeTools(cfg.Probe.Binary)...)
	}
	return tools
}

// printWaitSuccess outputs the readiness result.
func printWaitSuccess(bctx *bootstrap.Context) {
	state := bctx.State
	if !state.Ready {
		return
	}

	fmt.Printf("\nLab is ready!\n")
	fmt.Printf("Targets:  %s\n", state.TargetList)
	fmt.Printf("Attempts: %d\n", state.Attempts)
}
