package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jbemmel/labup/internal/bootstrap"
	"github.com/jbemmel/labup/internal/config"
	"github.com/jbemmel/labup/internal/util/naming"
)

// LabStatus represents the lab state for JSON output.
type LabStatus struct {
	Lab        string            `json:"lab,omitempty"`
	Selector   string            `json:"selector"`
	Containers []ContainerStatus `json:"containers"`
	Targets    string            `json:"targets,omitempty"`
	Probe      *ProbeStatus      `json:"probe,omitempty"`
}

// ContainerStatus represents one discovered container.
type ContainerStatus struct {
	Name   string `json:"name"`
	Node   string `json:"node,omitempty"`
	State  string `json:"state,omitempty"`
	Status string `json:"status,omitempty"`
}

// ProbeStatus represents the result of a single probe round.
type ProbeStatus struct {
	Mode  string `json:"mode"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Status shows the lab's containers and, optionally, one probe round.
//
// Discovery runs once against the container runtime; there is no retry
// loop here. With withProbe a single readiness round is attempted on
// the discovered targets and its outcome reported as-is.
func Status(ctx context.Context, configPath string, withProbe, jsonOutput bool) error {
	cfg, err := loadLabConfig(configPath, "", true)
	if err != nil {
		return err
	}

	status, err := collectStatus(ctx, cfg, withProbe)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printStatusJSON(status)
	}

	return printStatusFormatted(status)
}

// collectStatus runs one discovery pass and an optional probe round.
func collectStatus(ctx context.Context, cfg *config.Config, withProbe bool) (*LabStatus, error) {
	discoverer, err := buildDiscoverer(cfg)
	if err != nil {
		return nil, err
	}

	timeouts := config.LoadTimeouts()
	discoverCtx, cancel := context.WithTimeout(ctx, timeouts.Discover)
	defer cancel()

	containers, err := discoverer.Discover(discoverCtx, cfg.Selector())
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	status := &LabStatus{
		Lab:      cfg.Name,
		Selector: cfg.Selector(),
		Targets:  bootstrap.Join(containers),
	}
	for _, c := range containers {
		status.Containers = append(status.Containers, ContainerStatus{
			Name:   c.Name,
			Node:   naming.Node(c.Name, cfg.Name),
			State:  c.State,
			Status: c.Status,
		})
	}

	if withProbe && status.Targets != "" {
		prober := buildProber(cfg)
		result := &ProbeStatus{Mode: prober.Name(), Ready: true}
		if err := prober.Probe(ctx, status.Targets); err != nil {
			result.Ready = false
			result.Error = err.Error()
		}
		status.Probe = result
	}

	return status, nil
}

// printStatusJSON outputs the lab status as JSON.
func printStatusJSON(status *LabStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printStatusFormatted outputs the lab status in a formatted display.
func printStatusFormatted(status *LabStatus) error {
	if status.Lab != "" {
		fmt.Printf("labup lab: %s\n", status.Lab)
	} else {
		fmt.Printf("labup: all containerlab containers\n")
	}
	fmt.Println("─────────────────────────────────────")
	fmt.Println()

	if len(status.Containers) == 0 {
		fmt.Println("No containers found. Is the lab deployed?")
		return nil
	}

	fmt.Println("Containers:")
	for _, c := range status.Containers {
		extra := c.Status
		if extra == "" {
			extra = c.State
		}
		printStatusLine(c.Name, c.State == "running", extra)
	}

	fmt.Println()
	fmt.Printf("Targets: %s\n", status.Targets)

	if status.Probe != nil {
		if status.Probe.Ready {
			fmt.Printf("Probe:   %s answered\n", status.Probe.Mode)
		} else {
			fmt.Printf("Probe:   not ready yet (%s): %s\n", status.Probe.Mode, status.Probe.Error)
		}
	}

	return nil
}

// printStatusLine prints a single status line with indicator.
func printStatusLine(name string, ready bool, extra string) {
	indicator := "○"
	if ready {
		indicator = "✓"
	}

	if extra != "" {
		fmt.Printf("  %s %s (%s)\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s %s\n", indicator, name)
	}
}
