package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbemmel/labup/cmd/labup/handlers"
)

// Init returns the command for creating a new lab configuration.
//
// On an interactive terminal this launches a short wizard; otherwise, or
// with --defaults, a configuration with sensible defaults is written.
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a lab configuration file",
		Long: `Create a labup.yaml configuration file.

On an interactive terminal an interactive wizard asks for the lab name,
topology file, container runtime, and probe settings. In scripts, or
with --defaults, a configuration with sensible defaults is written
without asking.

An existing file is never overwritten unless --force is given.

Examples:
  # Interactive wizard
  labup init

  # Non-interactive, defaults only
  labup init --defaults

  # Write somewhere else
  labup init -o labs/srl/labup.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: labup.yaml)")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip the wizard and write defaults")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
