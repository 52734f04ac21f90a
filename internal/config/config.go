package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jbemmel/labup/internal/util/labels"
)

// Config describes a lab: where its topology lives, how its containers
// are found, and how readiness is probed.
type Config struct {
	// Name is the lab name given to containerlab. It scopes discovery to
	// this lab's containers and is the prefix of their names
	// (clab-{name}-{node}). Optional: when empty, discovery matches every
	// containerlab-managed container on the host.
	Name string `yaml:"name,omitempty"`

	// Topology is the containerlab topology file to deploy. Either a
	// local path or an s3://bucket/key URL; remote topologies are
	// fetched to a temp file before the deploy subprocess runs.
	Topology string `yaml:"topology,omitempty"`

	// Runtime is the container runtime whose CLI is used for discovery
	// (docker or podman). Defaults to docker.
	Runtime Runtime `yaml:"runtime,omitempty"`

	// Discovery selects how the lab's containers are listed: "cli" runs
	// the runtime binary, "api" talks to the Docker Engine API directly.
	// Defaults to cli.
	Discovery DiscoveryMode `yaml:"discovery,omitempty"`

	// LabelSelector overrides the label filter used to find the lab's
	// containers. Defaults to "containerlab={name}", or the bare
	// "containerlab" key when no lab name is configured.
	LabelSelector string `yaml:"label_selector,omitempty"`

	// Probe configures the readiness probe run against the lab.
	Probe ProbeConfig `yaml:"probe,omitempty"`

	// DeployArgs are extra arguments appended to the containerlab deploy
	// invocation (for example --reconfigure).
	DeployArgs []string `yaml:"deploy_args,omitempty"`

	// DestroyArgs are extra arguments appended to the containerlab
	// destroy invocation (for example --cleanup).
	DestroyArgs []string `yaml:"destroy_args,omitempty"`

	// SkipChecks disables the prerequisite binary checks.
	SkipChecks bool `yaml:"skip_checks,omitempty"`

	// MetricsAddr exposes a Prometheus /metrics endpoint on this address
	// while the readiness gate runs. Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// Runtime is a container runtime CLI.
type Runtime string

const (
	// RuntimeDocker queries containers through the docker binary.
	RuntimeDocker Runtime = "docker"
	// RuntimePodman queries containers through the podman binary, whose
	// ps flags are docker-compatible.
	RuntimePodman Runtime = "podman"
)

// ValidRuntimes returns all valid runtimes.
func ValidRuntimes() []Runtime {
	return []Runtime{RuntimeDocker, RuntimePodman}
}

// IsValid returns true if the runtime is supported.
func (r Runtime) IsValid() bool {
	switch r {
	case RuntimeDocker, RuntimePodman:
		return true
	default:
		return false
	}
}

// DiscoveryMode selects how the lab's containers are listed.
type DiscoveryMode string

const (
	// DiscoveryCLI shells out to the runtime binary (docker ps).
	DiscoveryCLI DiscoveryMode = "cli"
	// DiscoveryAPI talks to the Docker Engine API over its socket.
	DiscoveryAPI DiscoveryMode = "api"
)

// ValidDiscoveryModes returns all valid discovery modes.
func ValidDiscoveryModes() []DiscoveryMode {
	return []DiscoveryMode{DiscoveryCLI, DiscoveryAPI}
}

// IsValid returns true if the discovery mode is supported.
func (d DiscoveryMode) IsValid() bool {
	switch d {
	case DiscoveryCLI, DiscoveryAPI:
		return true
	default:
		return false
	}
}

// ProbeMode selects the readiness probe transport.
type ProbeMode string

const (
	// ProbeGNMI invokes gnmic capabilities against the target list. The
	// lab is ready when the subprocess exits zero.
	ProbeGNMI ProbeMode = "gnmi"
	// ProbeTCP dials each target's management port. The lab is ready
	// when every target accepts the connection.
	ProbeTCP ProbeMode = "tcp"
	// ProbeSSH completes an SSH handshake with each target. The lab is
	// ready when every handshake succeeds.
	ProbeSSH ProbeMode = "ssh"
)

// ValidProbeModes returns all valid probe modes.
func ValidProbeModes() []ProbeMode {
	return []ProbeMode{ProbeGNMI, ProbeTCP, ProbeSSH}
}

// IsValid returns true if the probe mode is supported.
func (m ProbeMode) IsValid() bool {
	switch m {
	case ProbeGNMI, ProbeTCP, ProbeSSH:
		return true
	default:
		return false
	}
}

// ProbeConfig configures the readiness probe.
type ProbeConfig struct {
	// Mode is the probe transport (gnmi, tcp, ssh). Defaults to gnmi.
	Mode ProbeMode `yaml:"mode,omitempty"`

	// Username authenticates the gnmi and ssh probes. Defaults to the
	// NOS image default, admin.
	Username string `yaml:"username,omitempty"`

	// Password authenticates the gnmi and ssh probes. Defaults to admin.
	Password string `yaml:"password,omitempty"`

	// Insecure uses plaintext gRPC for the gnmi probe instead of TLS.
	// Defaults to true: containerlab NOS images ship without usable
	// management certificates.
	Insecure *bool `yaml:"insecure,omitempty"`

	// SkipVerify uses TLS but skips certificate verification. Only
	// consulted when Insecure is false.
	SkipVerify bool `yaml:"skip_verify,omitempty"`

	// Timeout bounds a single probe attempt (Go duration string).
	// Defaults to 5s.
	Timeout string `yaml:"timeout,omitempty"`

	// Interval is the fixed wait between failed attempts (Go duration
	// string). Defaults to 5s. There is no backoff: the gate re-probes
	// at this interval until the lab answers.
	Interval string `yaml:"interval,omitempty"`

	// Port is the management port for the tcp and ssh probes. Defaults
	// to 57400 (gNMI) for tcp and 22 for ssh.
	Port int `yaml:"port,omitempty"`

	// Encoding is passed to gnmic as -e when set (for example json_ietf).
	Encoding string `yaml:"encoding,omitempty"`

	// Binary overrides the gnmic binary path.
	Binary string `yaml:"binary,omitempty"`

	// Parallel bounds how many targets the tcp and ssh probes dial at
	// once. Defaults to 16; zero or negative means the default.
	Parallel int `yaml:"parallel,omitempty"`
}

// Probe defaults.
const (
	// DefaultUsername is the factory login of containerlab NOS images.
	DefaultUsername = "admin"
	// DefaultPassword is the factory password of containerlab NOS images.
	DefaultPassword = "admin"
	// DefaultProbeTimeout bounds a single probe attempt.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultProbeInterval is the fixed wait between failed attempts.
	DefaultProbeInterval = 5 * time.Second
	// DefaultParallel bounds the tcp/ssh probe fan-out.
	DefaultParallel = 16
)

// GetRuntime returns the configured runtime, defaulting to docker.
func (c *Config) GetRuntime() Runtime {
	if c.Runtime == "" {
		return RuntimeDocker
	}
	return c.Runtime
}

// GetDiscovery returns the discovery mode, defaulting to cli.
func (c *Config) GetDiscovery() DiscoveryMode {
	if c.Discovery == "" {
		return DiscoveryCLI
	}
	return c.Discovery
}

// Selector returns the label filter used to find the lab's containers.
func (c *Config) Selector() string {
	if c.LabelSelector != "" {
		return c.LabelSelector
	}
	return labels.Selector(c.Name)
}

// RemoteTopology returns true when the topology is an s3:// URL.
func (c *Config) RemoteTopology() bool {
	return strings.HasPrefix(c.Topology, "s3://")
}

// GetMode returns the probe mode, defaulting to gnmi.
func (p *ProbeConfig) GetMode() ProbeMode {
	if p.Mode == "" {
		return ProbeGNMI
	}
	return p.Mode
}

// GetUsername returns the probe username, defaulting to admin.
func (p *ProbeConfig) GetUsername() string {
	if p.Username == "" {
		return DefaultUsername
	}
	return p.Username
}

// GetPassword returns the probe password, defaulting to admin.
func (p *ProbeConfig) GetPassword() string {
	if p.Password == "" {
		return DefaultPassword
	}
	return p.Password
}

// InsecureEnabled returns whether the gnmi probe runs in plaintext.
// Unset means true.
func (p *ProbeConfig) InsecureEnabled() bool {
	return p.Insecure == nil || *p.Insecure
}

// AttemptTimeout returns the per-attempt timeout, defaulting to 5s.
// Invalid strings fall back to the default; Validate rejects them on
// the load path.
func (p *ProbeConfig) AttemptTimeout() time.Duration {
	return parseConfigDuration(p.Timeout, DefaultProbeTimeout)
}

// RetryInterval returns the wait between failed attempts, defaulting
// to 5s.
func (p *ProbeConfig) RetryInterval() time.Duration {
	return parseConfigDuration(p.Interval, DefaultProbeInterval)
}

// GetPort returns the management port for the tcp and ssh probes.
func (p *ProbeConfig) GetPort() int {
	if p.Port != 0 {
		return p.Port
	}
	if p.GetMode() == ProbeSSH {
		return SSHPort
	}
	return GNMIPort
}

// GetBinary returns the gnmic binary, defaulting to "gnmic" from PATH.
func (p *ProbeConfig) GetBinary() string {
	if p.Binary == "" {
		return "gnmic"
	}
	return p.Binary
}

// GetParallel returns the probe fan-out bound, defaulting to 16.
func (p *ProbeConfig) GetParallel() int {
	if p.Parallel <= 0 {
		return DefaultParallel
	}
	return p.Parallel
}

// Validate checks the configuration for coherence and returns all
// problems joined into one error. Topology presence is checked
// separately by ValidateForDeploy; wait and status work against an
// already-running lab without one.
func (c *Config) Validate() error {
	var errs []error

	if c.Name != "" && !isValidLabName(c.Name) {
		errs = append(errs, errors.New("name must start with an alphanumeric and contain only alphanumerics, hyphens, underscores and dots"))
	}

	if c.Runtime != "" && !c.Runtime.IsValid() {
		errs = append(errs, fmt.Errorf("runtime must be one of: %v", ValidRuntimes()))
	}

	if c.Discovery != "" && !c.Discovery.IsValid() {
		errs = append(errs, fmt.Errorf("discovery must be one of: %v", ValidDiscoveryModes()))
	}

	if c.Probe.Mode != "" && !c.Probe.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("probe.mode must be one of: %v", ValidProbeModes()))
	}

	if c.Probe.Timeout != "" {
		if d, err := time.ParseDuration(c.Probe.Timeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("probe.timeout %q must be a positive duration", c.Probe.Timeout))
		}
	}

	if c.Probe.Interval != "" {
		if d, err := time.ParseDuration(c.Probe.Interval); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("probe.interval %q must be a positive duration", c.Probe.Interval))
		}
	}

	if c.Probe.Port < 0 || c.Probe.Port > 65535 {
		errs = append(errs, fmt.Errorf("probe.port %d must be within 0-65535", c.Probe.Port))
	}

	if c.Probe.Parallel < 0 {
		errs = append(errs, fmt.Errorf("probe.parallel %d must not be negative", c.Probe.Parallel))
	}

	return errors.Join(errs...)
}

// ValidateForDeploy validates the configuration for commands that
// deploy or destroy the lab, which require a topology.
func (c *Config) ValidateForDeploy() error {
	var errs []error

	if c.Topology == "" {
		errs = append(errs, errors.New("topology is required"))
	}
	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Default returns the configuration scaffolded by `labup init`.
func Default() *Config {
	return &Config{
		Name:      "lab",
		Topology:  "topology.clab.yml",
		Runtime:   RuntimeDocker,
		Discovery: DiscoveryCLI,
		Probe: ProbeConfig{
			Mode:     ProbeGNMI,
			Username: DefaultUsername,
			Password: DefaultPassword,
			Timeout:  "5s",
			Interval: "5s",
		},
	}
}

// parseConfigDuration parses a duration string, falling back to the
// default when empty or invalid.
func parseConfigDuration(val string, defaultVal time.Duration) time.Duration {
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// isValidLabName checks that a lab name is safe to splice into
// container names: first character alphanumeric, the rest alphanumeric,
// hyphens, underscores or dots.
func isValidLabName(name string) bool {
	for i, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if i == 0 {
			if !alnum {
				return false
			}
			continue
		}
		if !alnum && r != '-' && r != '_' && r != '.' {
			return false
		}
	}
	return name != ""
}
