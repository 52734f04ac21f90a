package probe

import (
	"context"
	"fmt"
	"os/exec"
)

// GnmicProber shells out to gnmic and asks every target for its gNMI
// capabilities. Nodes that have not finished booting refuse the gRPC
// connection, so a successful exchange with all targets is a reliable
// readiness signal.
type GnmicProber struct {
	cfg Config
}

// NewGnmicProber returns a gnmic-based prober.
func NewGnmicProber(cfg Config) *GnmicProber {
	return &GnmicProber{cfg: cfg}
}

// Name implements Prober.
func (p *GnmicProber) Name() string { return "gnmi" }

func (p *GnmicProber) binary() string {
	if p.cfg.Binary == "" {
		return DefaultBinary
	}
	return p.cfg.Binary
}

// Args builds the gnmic argument list for a capabilities exchange
// against the comma-separated target list.
func (p *GnmicProber) Args(targets string) []string {
	args := []string{"-a", targets, "-u", p.cfg.Username, "-p", p.cfg.Password}
	if p.cfg.Insecure {
		args = append(args, "--insecure")
	}
	if p.cfg.SkipVerify {
		args = append(args, "--skip-verify")
	}
	args = append(args, "--timeout", p.cfg.timeout().String())
	if p.cfg.Encoding != "" {
		args = append(args, "-e", p.cfg.Encoding)
	}
	return append(args, "capabilities")
}

// Probe implements Prober. It returns nil only when gnmic exits zero,
// meaning all targets completed the capabilities exchange.
func (p *GnmicProber) Probe(ctx context.Context, targets string) error {
	// #nosec G204 - binary comes from config, not remote input
	cmd := exec.CommandContext(ctx, p.binary(), p.Args(targets)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("gnmi capabilities probe failed: %w\nOutput: %s", err, string(out))
	}
	return nil
}
