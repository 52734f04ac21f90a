package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbemmel/labup/cmd/labup/handlers"
)

// Status returns the command for showing the lab's current state.
func Status() *cobra.Command {
	var (
		configPath string
		withProbe  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the lab's containers and probe state",
		Long: `Show the containers of the lab and, optionally, one probe round.

Discovery runs once against the container runtime. With --probe a single
readiness round is attempted on the discovered targets, without retrying.

Examples:
  # List the lab's containers
  labup status

  # Include one readiness probe round
  labup status --probe

  # Machine-readable output
  labup status --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, withProbe, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: labup.yaml)")
	cmd.Flags().BoolVar(&withProbe, "probe", false, "Attempt one readiness probe round")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
