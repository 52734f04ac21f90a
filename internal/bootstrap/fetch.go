package bootstrap

import (
	"context"
	"fmt"

	"github.com/jbemmel/labup/internal/platform/s3"
)

// TopologyFetcher downloads a remote topology reference to a local
// file. Implemented by s3.Client.
type TopologyFetcher interface {
	FetchTopology(ctx context.Context, url string) (string, func(), error)
}

// FetchPhase resolves the topology reference to a local file path.
// Local paths pass through untouched; s3:// URLs are downloaded to a
// temp file so containerlab only ever sees a path.
type FetchPhase struct {
	// Fetcher is constructed from the environment when nil.
	Fetcher TopologyFetcher
}

// Name implements Phase.
func (p *FetchPhase) Name() string { return "fetch" }

// Run implements Phase.
func (p *FetchPhase) Run(ctx *Context) error {
	topology := ctx.Config.Topology
	if !ctx.Config.RemoteTopology() {
		ctx.State.TopologyPath = topology
		return nil
	}

	fetcher := p.Fetcher
	if fetcher == nil {
		client, err := s3.NewClientFromEnv()
		if err != nil {
			return err
		}
		fetcher = client
	}

	fetchCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Fetch)
	defer cancel()

	path, cleanup, err := fetcher.FetchTopology(fetchCtx, topology)
	if err != nil {
		return fmt.Errorf("failed to fetch topology: %w", err)
	}

	ctx.State.TopologyPath = path
	ctx.State.TopologyCleanup = cleanup
	ctx.Observer.Printf("Fetched %s to %s", topology, path)
	return nil
}
