package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbemmel/labup/internal/util/retry"
)

// URLPrefix marks a remote topology reference.
const URLPrefix = "s3://"

// IsURL reports whether the topology reference points at object
// storage rather than the local filesystem.
func IsURL(topology string) bool {
	return strings.HasPrefix(topology, URLPrefix)
}

// ParseURL splits an s3://bucket/key URL into bucket and key.
func ParseURL(rawURL string) (bucket, key string, err error) {
	if !IsURL(rawURL) {
		return "", "", fmt.Errorf("not an s3 URL: %s", rawURL)
	}
	parts := strings.SplitN(strings.TrimPrefix(rawURL, URLPrefix), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("s3 URL %s must have the form s3://bucket/key", rawURL)
	}
	return parts[0], parts[1], nil
}

// FetchTopology downloads a remote topology into a temp directory and
// returns the local file path plus a cleanup func that removes it
// again. Transient download errors are retried; a missing object is
// reported immediately.
func (c *Client) FetchTopology(ctx context.Context, rawURL string) (string, func(), error) {
	bucket, key, err := ParseURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	var data []byte
	err = retry.Do(ctx, func() error {
		var getErr error
		data, getErr = c.GetObject(ctx, bucket, key)
		if isNotFoundError(getErr) {
			return retry.Permanent(getErr)
		}
		return getErr
	})
	if err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("topology object %s is empty", rawURL)
	}

	dir, err := os.MkdirTemp("", "labup-topology-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write topology file: %w", err)
	}

	return path, cleanup, nil
}
