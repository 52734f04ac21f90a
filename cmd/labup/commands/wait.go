package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbemmel/labup/cmd/labup/handlers"
)

// Wait returns the command for blocking until a running lab answers.
//
// This command skips deployment entirely: it discovers the containers of
// an already-running lab and probes them until the management plane
// responds. Useful after a 'labup up --skip-wait' or when another tool
// deployed the topology.
func Wait() *cobra.Command {
	var opts handlers.WaitOptions

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the running lab answers the readiness probe",
		Long: `Wait until every node of an already-running lab answers the probe.

No deployment happens. The lab's containers are discovered from the
container runtime and probed together until the management plane
responds, printing a timestamped "not ready yet" line per failed round.

Examples:
  # Wait for the lab described by labup.yaml
  labup wait

  # Wait at most 5 minutes
  labup wait --timeout 5m

  # Watch progress in a full-screen terminal UI
  labup wait --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Wait(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: labup.yaml)")
	cmd.Flags().StringVarP(&opts.Topology, "topo", "t", "", "Topology file, overrides the configured one")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch progress in a full-screen terminal UI")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Overall readiness deadline, 0 waits forever")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	return cmd
}
