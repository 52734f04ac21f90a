package docker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// DefaultRuntime is the CLI binary used when none is configured.
const DefaultRuntime = "docker"

// CLIDiscoverer shells out to the container runtime CLI to list
// containers. It works with any runtime that understands the docker ps
// flag set, which includes podman.
type CLIDiscoverer struct {
	// Binary is the runtime CLI to invoke, for example "docker" or
	// "podman". Empty means docker.
	Binary string
}

// NewCLIDiscoverer returns a CLI-based discoverer for the given runtime
// binary.
func NewCLIDiscoverer(runtime string) *CLIDiscoverer {
	return &CLIDiscoverer{Binary: runtime}
}

func (d *CLIDiscoverer) binary() string {
	if d.Binary == "" {
		return DefaultRuntime
	}
	return d.Binary
}

// PSArgs builds the ps argument list that prints one matching container
// name per line.
func PSArgs(selector string) []string {
	return []string{"ps", "--filter", "label=" + selector, "--format", "{{.Names}}"}
}

// Discover lists running containers whose labels match the selector.
// Only names are known in CLI mode; State and Status stay empty.
func (d *CLIDiscoverer) Discover(ctx context.Context, selector string) ([]Container, error) {
	// #nosec G204 - binary comes from config, not remote input
	cmd := exec.CommandContext(ctx, d.binary(), PSArgs(selector)...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s ps failed: %w\nOutput: %s", d.binary(), err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s ps failed: %w", d.binary(), err)
	}

	names := ParseNames(string(out))
	containers := make([]Container, 0, len(names))
	for _, name := range names {
		containers = append(containers, Container{Name: name})
	}
	return containers, nil
}

// ParseNames extracts container names from ps output, one per line.
// Blank lines are dropped and the result is sorted.
func ParseNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	sort.Strings(names)
	return names
}
