package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/jbemmel/labup/internal/util/async"
)

// TCPProber dials the management port of every target. It needs no
// extra tooling on the host, at the cost of only proving that the port
// is open rather than that the management plane answers.
type TCPProber struct {
	cfg Config
}

// NewTCPProber returns a prober that checks plain TCP reachability.
func NewTCPProber(cfg Config) *TCPProber {
	return &TCPProber{cfg: cfg}
}

// Name implements Prober.
func (p *TCPProber) Name() string { return "tcp" }

// Probe implements Prober. Targets are dialed in parallel and the
// first failure wins.
func (p *TCPProber) Probe(ctx context.Context, targets string) error {
	port := strconv.Itoa(p.cfg.Port)

	var tasks []async.Task
	for _, target := range SplitTargets(targets) {
		addr := net.JoinHostPort(target, port)
		tasks = append(tasks, async.Task{
			Name: addr,
			Func: func(ctx context.Context) error {
				return p.dial(ctx, addr)
			},
		})
	}
	if err := async.RunParallel(ctx, tasks, p.cfg.Parallel); err != nil {
		return fmt.Errorf("tcp probe failed: %w", err)
	}
	return nil
}

func (p *TCPProber) dial(ctx context.Context, addr string) error {
	dialer := net.Dialer{Timeout: p.cfg.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
