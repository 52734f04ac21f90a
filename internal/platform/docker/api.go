package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// ContainerLister is the slice of the container runtime API that the
// APIDiscoverer needs. *client.Client satisfies it.
type ContainerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// APIDiscoverer lists containers through the runtime's HTTP API instead
// of shelling out. It also reports container state and status, which the
// CLI path does not.
type APIDiscoverer struct {
	client ContainerLister
}

// NewAPIDiscoverer connects to the container runtime API, honoring
// DOCKER_HOST and the other standard environment variables.
func NewAPIDiscoverer() (*APIDiscoverer, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create container runtime client: %w", err)
	}
	return &APIDiscoverer{client: cli}, nil
}

// NewAPIDiscovererWithClient wraps an existing API client.
func NewAPIDiscovererWithClient(cli ContainerLister) *APIDiscoverer {
	return &APIDiscoverer{client: cli}
}

// Discover lists running containers whose labels match the selector,
// sorted by name.
func (d *APIDiscoverer) Discover(ctx context.Context, selector string) ([]Container, error) {
	summaries, err := d.client.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("label", selector)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]Container, 0, len(summaries))
	for _, s := range summaries {
		containers = append(containers, Container{
			Name:   summaryName(s),
			State:  string(s.State),
			Status: s.Status,
		})
	}
	sort.Slice(containers, func(i, j int) bool { return containers[i].Name < containers[j].Name })
	return containers, nil
}

// summaryName returns the primary container name without the leading
// slash the API prepends, falling back to the short ID.
func summaryName(s container.Summary) string {
	if len(s.Names) > 0 {
		return strings.TrimPrefix(s.Names[0], "/")
	}
	if len(s.ID) >= 12 {
		return s.ID[:12]
	}
	return s.ID
}
