package probe

import (
	"context"
	"strings"
	"time"
)

// DefaultBinary is the gnmic executable used when none is configured.
const DefaultBinary = "gnmic"

// DefaultTimeout bounds a single probe attempt when no timeout is
// configured.
const DefaultTimeout = 5 * time.Second

// Prober checks whether all targets in a comma-separated list are
// ready. A nil return means every target answered.
type Prober interface {
	// Name identifies the probe mode, for example "gnmi".
	Name() string

	// Probe runs one readiness check against the full target list.
	Probe(ctx context.Context, targets string) error
}

// Config carries the connection settings shared by all probe modes.
type Config struct {
	// Username and Password authenticate against the lab nodes.
	Username string
	Password string

	// Insecure uses plaintext gRPC instead of TLS for gNMI probes.
	Insecure bool

	// SkipVerify keeps TLS but skips certificate verification.
	SkipVerify bool

	// Timeout bounds a single probe attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// Port is the management port to dial in tcp and ssh mode.
	Port int

	// Encoding optionally pins the gNMI encoding, for example "json_ietf".
	Encoding string

	// Binary is the gnmic executable. Empty means DefaultBinary.
	Binary string

	// Parallel caps concurrent per-target connections in tcp and ssh
	// mode. Zero means unbounded.
	Parallel int
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// New returns the prober for the given mode. Unknown or empty modes
// fall back to gnmi.
func New(mode string, cfg Config) Prober {
	switch mode {
	case "tcp":
		return NewTCPProber(cfg)
	case "ssh":
		return NewSSHProber(cfg)
	default:
		return NewGnmicProber(cfg)
	}
}

// SplitTargets splits a comma-separated target list into individual
// target names, dropping blanks.
func SplitTargets(targets string) []string {
	var out []string
	for _, t := range strings.Split(targets, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
