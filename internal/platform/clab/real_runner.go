package clab

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RealRunner executes the containerlab binary.
type RealRunner struct {
	// Binary overrides the containerlab path. Empty uses PATH lookup.
	Binary string
}

// NewRunner creates a runner for the containerlab binary in PATH.
func NewRunner() *RealRunner {
	return &RealRunner{}
}

func (r *RealRunner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// Deploy runs containerlab deploy -t <topology> with any extra args.
func (r *RealRunner) Deploy(ctx context.Context, topology string, extraArgs ...string) (string, error) {
	return r.run(ctx, "deploy", DeployArgs(topology, extraArgs...))
}

// Destroy runs containerlab destroy -t <topology> with any extra args.
func (r *RealRunner) Destroy(ctx context.Context, topology string, extraArgs ...string) (string, error) {
	return r.run(ctx, "destroy", DestroyArgs(topology, extraArgs...))
}

// Version returns the first line of containerlab version output, or an
// empty string when the binary is unavailable.
func (r *RealRunner) Version(ctx context.Context) string {
	// #nosec G204 - binary comes from config, not remote input
	out, err := exec.CommandContext(ctx, r.binary(), "version").Output()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		// containerlab prints an ASCII banner before the version line
		if strings.HasPrefix(line, "version:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "version:"))
		}
	}
	return strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
}

func (r *RealRunner) run(ctx context.Context, op string, args []string) (string, error) {
	// #nosec G204 - argv is built from config values, not remote input
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("containerlab %s failed: %w\nOutput: %s", op, err, string(output))
	}
	return string(output), nil
}
