package docker

import "context"

// Container describes a single lab container found by a Discoverer.
type Container struct {
	// Name is the container name without the leading slash.
	Name string

	// State is the runtime state (for example "running"). Only the API
	// discoverer fills it in.
	State string

	// Status is the human-readable status line (for example "Up 5
	// minutes"). Only the API discoverer fills it in.
	Status string
}

// Discoverer lists lab containers matching a label selector of the
// form key=value.
type Discoverer interface {
	Discover(ctx context.Context, selector string) ([]Container, error)
}
