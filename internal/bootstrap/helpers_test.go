package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jbemmel/labup/internal/config"
	"github.com/jbemmel/labup/internal/platform/docker"
)

// fakeRunner implements clab.Runner.
type fakeRunner struct {
	deployOut    string
	deployErr    error
	destroyErr   error
	deployCalls  int
	destroyCalls int
	gotTopology  string
	gotArgs      []string
}

func (f *fakeRunner) Deploy(_ context.Context, topology string, extraArgs ...string) (string, error) {
	f.deployCalls++
	f.gotTopology = topology
	f.gotArgs = extraArgs
	return f.deployOut, f.deployErr
}

func (f *fakeRunner) Destroy(_ context.Context, topology string, _ ...string) (string, error) {
	f.destroyCalls++
	f.gotTopology = topology
	return "", f.destroyErr
}

func (f *fakeRunner) Version(_ context.Context) string { return "0.0.0-test" }

// fakeDiscoverer returns canned results per call, repeating the last
// entry once the script runs out.
type fakeDiscoverer struct {
	results []discoveryResult
	calls   int
}

type discoveryResult struct {
	containers []docker.Container
	err        error
}

func (f *fakeDiscoverer) Discover(_ context.Context, _ string) ([]docker.Container, error) {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	if i < 0 {
		return nil, nil
	}
	r := f.results[i]
	return r.containers, r.err
}

// fakeProber returns canned errors per call, repeating the last entry
// once the script runs out.
type fakeProber struct {
	errs       []error
	calls      int
	gotTargets []string
}

func (f *fakeProber) Name() string { return "fake" }

func (f *fakeProber) Probe(_ context.Context, targets string) error {
	i := f.calls
	if i >= len(f.errs) {
		i = len(f.errs) - 1
	}
	f.calls++
	f.gotTargets = append(f.gotTargets, targets)
	if i < 0 {
		return nil
	}
	return f.errs[i]
}

// recordingObserver captures observer output for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	lines  []string
	events []Event
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) eventsOfType(t EventType) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// testContext builds a Context with fast timeouts and a recording
// observer.
func testContext(cfg *config.Config, runner *fakeRunner, discoverer *fakeDiscoverer, prober *fakeProber) (*Context, *recordingObserver) {
	observer := &recordingObserver{}
	return &Context{
		Context: context.Background(),
		Config:  cfg,
		Timeouts: &config.Timeouts{
			Fetch:    time.Second,
			Deploy:   time.Second,
			Destroy:  time.Second,
			Discover: time.Second,
		},
		State:      NewState(),
		Runner:     runner,
		Discoverer: discoverer,
		Prober:     prober,
		Observer:   observer,
		Logger:     zap.NewNop(),
	}, observer
}

// fastConfig returns a lab config with millisecond probe intervals.
func fastConfig() *config.Config {
	return &config.Config{
		Name:     "srl",
		Topology: "srl.clab.yml",
		Probe: config.ProbeConfig{
			Timeout:  "50ms",
			Interval: "10ms",
		},
	}
}
