package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/jbemmel/labup/internal/bootstrap"
	"github.com/jbemmel/labup/internal/util/naming"
	"github.com/jbemmel/labup/internal/util/prerequisites"
)

// Down destroys the deployed lab with containerlab.
//
// Remote topology references are fetched first so containerlab sees a
// local file, same as during bringup. Only the containerlab binary is
// required; discovery and probe tools are not. With cleanup the
// clab-<name> lab directory is removed as well.
func Down(ctx context.Context, configPath, topology string, skipChecks, cleanup bool) error {
	cfg, err := loadLabConfig(configPath, topology, false)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForDeploy(); err != nil {
		return err
	}

	if err := checkPrerequisites(cfg, skipChecks, prerequisites.DeployTools()); err != nil {
		return err
	}

	if cleanup {
		cfg.DestroyArgs = append(cfg.DestroyArgs, "--cleanup")
	}

	log.Printf("Destroying lab from %s", cfg.Topology)

	phases := []bootstrap.Phase{
		&bootstrap.FetchPhase{},
		bootstrap.DestroyPhase{},
	}

	if _, err := runPipelineWithUI(ctx, cfg, phases, runOptions{}); err != nil {
		return err
	}

	fmt.Printf("\nLab destroyed.\n")
	if !cleanup && cfg.Name != "" {
		fmt.Printf("Lab directory %s kept; pass --cleanup to remove it too.\n", naming.LabDir(cfg.Name))
	}
	return nil
}
