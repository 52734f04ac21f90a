// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/jbemmel/labup/internal/bootstrap"
	"github.com/jbemmel/labup/internal/config"
	"github.com/jbemmel/labup/internal/observability"
	"github.com/jbemmel/labup/internal/platform/clab"
	"github.com/jbemmel/labup/internal/platform/docker"
	"github.com/jbemmel/labup/internal/platform/probe"
	"github.com/jbemmel/labup/internal/ui/tui"
	"github.com/jbemmel/labup/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newRunner creates the containerlab runner.
	newRunner = func() clab.Runner {
		return clab.NewRunner()
	}

	// newCLIDiscoverer creates a runtime-CLI container discoverer.
	newCLIDiscoverer = func(runtime string) docker.Discoverer {
		return docker.NewCLIDiscoverer(runtime)
	}

	// newAPIDiscoverer creates an Engine API container discoverer.
	newAPIDiscoverer = func() (docker.Discoverer, error) {
		return docker.NewAPIDiscoverer()
	}

	// newProber creates the readiness prober for the configured mode.
	newProber = probe.New

	// checkTools verifies external binaries are installed.
	checkTools = prerequisites.Check

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile locates labup.yaml near the working directory.
	findConfigFile = config.FindConfigFile

	// runPhases executes the bootstrap pipeline.
	runPhases = bootstrap.RunPhases

	// runWatchUI drives the pipeline under the full-screen TUI.
	runWatchUI = tui.Run
)

// UpOptions bundles the flags of the up command.
type UpOptions struct {
	ConfigPath  string
	Topology    string
	SkipWait    bool
	SkipChecks  bool
	Watch       bool
	Timeout     time.Duration
	MetricsAddr string
}

// Up deploys the lab and blocks until it answers the readiness probe.
//
// This function runs the complete bringup pipeline:
//  1. Loads the lab configuration (or falls back to defaults with -t)
//  2. Verifies the external binaries the run will need
//  3. Resolves the topology reference, downloading s3:// URLs
//  4. Deploys the topology with containerlab
//  5. Discovers the lab's containers from the container runtime
//  6. Probes all nodes together until the management plane answers
//
// Deployment and discovery failures do not abort the run: the pipeline
// logs a warning and carries on, so a half-deployed lab still reaches
// the probe loop and readiness is decided there.
func Up(ctx context.Context, opts UpOptions) error {
	cfg, err := loadLabConfig(opts.ConfigPath, opts.Topology, false)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForDeploy(); err != nil {
		return err
	}

	if err := checkPrerequisites(cfg, opts.SkipChecks, upTools(cfg)); err != nil {
		return err
	}

	log.Printf("Bringing up lab from %s", cfg.Topology)

	phases := []bootstrap.Phase{
		&bootstrap.FetchPhase{},
		bootstrap.DeployPhase{},
		bootstrap.DiscoverPhase{},
	}
	if !opts.SkipWait {
		phases = append(phases, bootstrap.AwaitPhase{})
	}

	bctx, err := runPipelineWithUI(ctx, cfg, phases, runOptions{
		Watch:       opts.Watch,
		Timeout:     opts.Timeout,
		MetricsAddr: opts.MetricsAddr,
	})
	if err != nil {
		return err
	}

	printUpSuccess(bctx)
	return nil
}

// loadLabConfig loads the lab configuration.
//
// If configPath is empty, it looks for labup.yaml in the current directory
// and its parents. When optional is true, or a topology override is given,
// a missing config file falls back to defaults so the command works
// without an init step.
func loadLabConfig(configPath, topology string, optional bool) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			if !optional && topology == "" {
				return nil, fmt.Errorf("no config file found: %w\nRun 'labup init' to create one, or pass a topology with -t", err)
			}
			log.Println("No config file found, using defaults")
			return &config.Config{Topology: topology}, nil
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("Using config: %s", configPath)

	if topology != "" {
		cfg.Topology = topology
	}
	return cfg, nil
}

// checkPrerequisites verifies required external binaries are installed.
// Enabled by default, skippable per invocation or via skip_checks.
func checkPrerequisites(cfg *config.Config, skip bool, tools []prerequisites.Tool) error {
	if skip || cfg.SkipChecks {
		return nil
	}

	log.Println("Checking prerequisites...")
	results := checkTools(tools)

	// Log found tools
	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	// Return error if required tools are missing
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	return nil
}

// upTools lists the binaries a full bringup needs.
func upTools(cfg *config.Config) []prerequisites.Tool {
	return append(prerequisites.DeployTools(), waitTools(cfg)...)
}

// buildDiscoverer constructs the container discoverer for the configured
// discovery mode.
func buildDiscoverer(cfg *config.Config) (docker.Discoverer, error) {
	if cfg.GetDiscovery() == config.DiscoveryAPI {
		return newAPIDiscoverer()
	}
	return newCLIDiscoverer(string(cfg.GetRuntime())), nil
}

// buildProber constructs the readiness prober from the probe settings.
func buildProber(cfg *config.Config) probe.Prober {
	return newProber(string(cfg.Probe.GetMode()), probe.Config{
		Username:   cfg.Probe.GetUsername(),
		Password:   cfg.Probe.GetPassword(),
		Insecure:   cfg.Probe.InsecureEnabled(),
		SkipVerify: cfg.Probe.SkipVerify,
		Timeout:    cfg.Probe.AttemptTimeout(),
		Port:       cfg.Probe.GetPort(),
		Encoding:   cfg.Probe.Encoding,
		Binary:     cfg.Probe.GetBinary(),
		Parallel:   cfg.Probe.GetParallel(),
	})
}

// buildContext assembles the bootstrap context with the configured runner,
// discoverer, prober, and a structured logger.
func buildContext(ctx context.Context, cfg *config.Config) (*bootstrap.Context, error) {
	discoverer, err := buildDiscoverer(cfg)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(observability.DefaultLogConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	bctx := bootstrap.NewContext(ctx, cfg, newRunner(), discoverer, buildProber(cfg))
	bctx.Logger = logger
	return bctx, nil
}

// runOptions carries the run flags shared by up and wait.
type runOptions struct {
	Watch       bool
	Timeout     time.Duration
	MetricsAddr string
}

// runPipelineWithUI assembles the bootstrap context and executes the phases,
// either on the console observer or under the watch TUI. The final context
// is returned so callers can report the resulting state.
func runPipelineWithUI(ctx context.Context, cfg *config.Config, phases []bootstrap.Phase, opts runOptions) (*bootstrap.Context, error) {
	bctx, err := buildContext(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if bctx.State.TopologyCleanup != nil {
			bctx.State.TopologyCleanup()
		}
	}()

	if opts.Timeout > 0 {
		bctx.Timeouts.Ready = opts.Timeout
	}

	addr := opts.MetricsAddr
	if addr == "" {
		addr = cfg.MetricsAddr
	}
	if addr != "" {
		metrics := observability.NewMetrics()
		bctx.Metrics = metrics
		go func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				bctx.Logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	if opts.Watch {
		err = runWatchUI(cfg.Name, cfg.Topology, phaseNames(phases), func(obs bootstrap.Observer) error {
			bctx.Observer = obs
			return runPhases(bctx, phases)
		})
		return bctx, err
	}

	return bctx, runPhases(bctx, phases)
}

// phaseNames extracts the phase names for UI display.
func phaseNames(phases []bootstrap.Phase) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name())
	}
	return names
}

// printUpSuccess outputs the bringup result and next steps for the user.
// Message varies depending on whether the readiness probe ran.
func printUpSuccess(bctx *bootstrap.Context) {
	state := bctx.State
	if state.TargetList == "" {
		return
	}

	fmt.Printf("\nLab is up!\n")
	fmt.Printf("Containers: %d\n", len(state.Containers))
	fmt.Printf("Targets:    %s\n", state.TargetList)

	if state.Ready {
		fmt.Printf("\nAll targets answered after %d attempt(s).\n", state.Attempts)
		if bctx.Config.Probe.GetMode() == config.ProbeGNMI {
			fmt.Printf("\nThe management plane is reachable with:\n")
			fmt.Printf("  gnmic -a %s -u %s --insecure capabilities\n", state.TargetList, bctx.Config.Probe.GetUsername())
		}
	} else {
		fmt.Printf("\nReadiness probe skipped. Block until the nodes answer with:\n")
		fmt.Printf("  labup wait\n")
	}
}
