package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbemmel/labup/cmd/labup/handlers"
)

// Down returns the command for destroying a deployed lab.
func Down() *cobra.Command {
	var (
		configPath string
		topology   string
		skipChecks bool
		cleanup    bool
	)

	cmd := &cobra.Command{
		Use:     "down",
		Aliases: []string{"destroy"},
		Short:   "Destroy the deployed lab",
		Long: `Destroy the deployed lab with containerlab.

This removes the lab's containers and virtual wiring. The topology file
is left untouched, and so is the clab-<name> lab directory unless
--cleanup is given.

Examples:
  # Destroy the lab described by labup.yaml
  labup down

  # Destroy a specific topology
  labup down -t srl02.clab.yml

  # Also remove the lab directory
  labup down --cleanup`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Down(cmd.Context(), configPath, topology, skipChecks, cleanup)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: labup.yaml)")
	cmd.Flags().StringVarP(&topology, "topo", "t", "", "Topology file, overrides the configured one")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip prerequisite binary checks")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Also remove the clab-<name> lab directory")

	return cmd
}
