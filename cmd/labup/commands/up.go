package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbemmel/labup/cmd/labup/handlers"
)

// Up returns the command for deploying a lab and waiting for readiness.
//
// This command runs the full bringup pipeline: resolving the topology,
// deploying it with containerlab, discovering the lab's containers from
// the runtime, and probing every node until the management plane answers.
//
// Optional flags:
//
//	--config, -c: Path to lab configuration YAML file (default: auto-detect labup.yaml)
//	--topo, -t:   Topology file, overrides the configured one
func Up() *cobra.Command {
	var opts handlers.UpOptions

	cmd := &cobra.Command{
		Use:     "up",
		Aliases: []string{"deploy"},
		Short:   "Deploy the lab and wait until every node answers",
		Long: `Deploy the lab and block until every node answers the readiness probe.

This command deploys the topology with containerlab, discovers the lab's
containers from the container runtime, and probes all nodes together until
the management plane responds. Each failed round prints a timestamped
"not ready yet" line and retries after the configured interval.

If no config file is specified, it looks for labup.yaml in the current
directory. Use 'labup init' to create one, or pass a topology directly
with -t to run with defaults.

Examples:
  # Bring up the lab described by labup.yaml
  labup up

  # Bring up a topology directly, no config file needed
  labup up -t srl02.clab.yml

  # Deploy only, skip the readiness gate
  labup up --skip-wait

  # Watch progress in a full-screen terminal UI
  labup up --watch

  # Give up if the lab is not ready within 10 minutes
  labup up --timeout 10m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: labup.yaml)")
	cmd.Flags().StringVarP(&opts.Topology, "topo", "t", "", "Topology file, overrides the configured one")
	cmd.Flags().BoolVar(&opts.SkipWait, "skip-wait", false, "Deploy and discover only, skip the readiness probe")
	cmd.Flags().BoolVar(&opts.SkipChecks, "skip-checks", false, "Skip prerequisite binary checks")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch progress in a full-screen terminal UI")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Overall readiness deadline, 0 waits forever")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	return cmd
}
