package clab

import "context"

// DefaultBinary is the containerlab binary looked up in PATH.
const DefaultBinary = "containerlab"

// Runner deploys and destroys containerlab topologies.
type Runner interface {
	// Deploy brings the topology up. Extra arguments are appended to
	// the deploy invocation. The combined subprocess output is returned
	// for logging either way.
	Deploy(ctx context.Context, topology string, extraArgs ...string) (string, error)

	// Destroy tears the topology down.
	Destroy(ctx context.Context, topology string, extraArgs ...string) (string, error)

	// Version returns the containerlab version string, best effort.
	Version(ctx context.Context) string
}

// DeployArgs builds the argument vector for a deploy invocation.
func DeployArgs(topology string, extraArgs ...string) []string {
	args := []string{"deploy", "-t", topology}
	return append(args, extraArgs...)
}

// DestroyArgs builds the argument vector for a destroy invocation.
func DestroyArgs(topology string, extraArgs ...string) []string {
	args := []string{"destroy", "-t", topology}
	return append(args, extraArgs...)
}
