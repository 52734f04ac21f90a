package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jbemmel/labup/internal/util/ptr"
)

// WizardResult holds the user's choices from the wizard.
type WizardResult struct {
	Name     string
	Topology string
	Runtime  Runtime
	Mode     ProbeMode
	Username string
	Password string
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		Runtime:  RuntimeDocker,
		Mode:     ProbeGNMI,
		Username: DefaultUsername,
		Password: DefaultPassword,
	}

	// Build the form
	form := huh.NewForm(
		// Lab identity
		huh.NewGroup(
			huh.NewInput().
				Title("Lab name").
				Description("The containerlab lab name; containers are named clab-{name}-{node}. Leave empty to match any lab.").
				Placeholder("srl").
				Value(&result.Name).
				Validate(validateWizardLabName),
		),

		// Topology
		huh.NewGroup(
			huh.NewInput().
				Title("Topology file").
				Description("Path to the containerlab topology, or an s3:// URL").
				Placeholder("topology.clab.yml").
				Value(&result.Topology).
				Validate(validateWizardTopology),
		),

		// Runtime selection
		huh.NewGroup(
			huh.NewSelect[Runtime]().
				Title("Container runtime").
				Description("Runtime queried for the lab's containers").
				Options(
					huh.NewOption("Docker", RuntimeDocker),
					huh.NewOption("Podman", RuntimePodman),
				).
				Value(&result.Runtime),
		),

		// Probe selection
		huh.NewGroup(
			huh.NewSelect[ProbeMode]().
				Title("Readiness probe").
				Description("gnmi: gnmic capabilities | tcp: management port dial | ssh: handshake").
				Options(
					huh.NewOption("gNMI capabilities via gnmic", ProbeGNMI),
					huh.NewOption("TCP dial of the management port", ProbeTCP),
					huh.NewOption("SSH handshake", ProbeSSH),
				).
				Value(&result.Mode),
		),

		// Node credentials
		huh.NewGroup(
			huh.NewInput().
				Title("Node username").
				Description("Management login for the lab nodes (NOS default: admin)").
				Placeholder(DefaultUsername).
				Value(&result.Username),

			huh.NewInput().
				Title("Node password").
				Description("Management password (NOS default: admin)").
				Placeholder(DefaultPassword).
				Value(&result.Password),
		),
	)

	// Run the form
	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
// Populates the probe block so the output YAML is explicit and
// self-documenting.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Name:      r.Name,
		Topology:  r.Topology,
		Runtime:   r.Runtime,
		Discovery: DiscoveryCLI,
		Probe: ProbeConfig{
			Mode:     r.Mode,
			Username: r.Username,
			Password: r.Password,
			Timeout:  "5s",
			Interval: "5s",
		},
	}
	if r.Mode == ProbeGNMI {
		cfg.Probe.Insecure = ptr.Bool(true)
	}
	return cfg
}

// validateWizardLabName validates the optional lab name.
func validateWizardLabName(s string) error {
	if s == "" {
		return nil // Optional
	}
	if !isValidLabName(s) {
		return fmt.Errorf("lab name can only contain alphanumerics, hyphens, underscores and dots")
	}
	return nil
}

// validateWizardTopology validates the topology input.
func validateWizardTopology(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("topology file is required")
	}
	return nil
}

// WriteConfigYAML writes the config to a YAML file.
func WriteConfigYAML(cfg *Config, path string) error {
	return Save(cfg, path)
}
