package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/crypto/ssh"

	"github.com/jbemmel/labup/internal/util/async"
)

// SSHProber completes an SSH handshake with every target. Network OS
// images bring up SSH together with the rest of the management plane,
// so a successful handshake is a stronger signal than an open port.
type SSHProber struct {
	cfg Config
}

// NewSSHProber returns a prober that authenticates over SSH.
func NewSSHProber(cfg Config) *SSHProber {
	return &SSHProber{cfg: cfg}
}

// Name implements Prober.
func (p *SSHProber) Name() string { return "ssh" }

// Probe implements Prober. Targets are dialed in parallel and the
// first failure wins.
func (p *SSHProber) Probe(ctx context.Context, targets string) error {
	clientConfig := &ssh.ClientConfig{
		User: p.cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(p.cfg.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // lab nodes have ephemeral host keys
		Timeout:         p.cfg.timeout(),
	}
	port := strconv.Itoa(p.cfg.Port)

	var tasks []async.Task
	for _, target := range SplitTargets(targets) {
		addr := net.JoinHostPort(target, port)
		tasks = append(tasks, async.Task{
			Name: addr,
			Func: func(ctx context.Context) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return dialSSH(addr, clientConfig)
			},
		})
	}
	if err := async.RunParallel(ctx, tasks, p.cfg.Parallel); err != nil {
		return fmt.Errorf("ssh probe failed: %w", err)
	}
	return nil
}

// dialSSH connects and immediately closes the session. The handshake
// itself, including password authentication, is the readiness check.
// ClientConfig.Timeout bounds the whole exchange.
func dialSSH(addr string, clientConfig *ssh.ClientConfig) error {
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	return client.Close()
}
