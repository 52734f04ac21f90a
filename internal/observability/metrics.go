package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for a bootstrap run. All
// collectors live on a private registry so repeated runs in tests never
// collide with the default one.
type Metrics struct {
	registry *prometheus.Registry

	probeAttempts *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	labReady      *prometheus.GaugeVec
	labTargets    *prometheus.GaugeVec
	phaseDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the bootstrap collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		probeAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "labup",
				Subsystem: "probe",
				Name:      "attempts_total",
				Help:      "Total number of readiness probe attempts by result",
			},
			[]string{"lab", "result"},
		),

		probeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "labup",
				Subsystem: "probe",
				Name:      "duration_seconds",
				Help:      "Duration of readiness probe attempts in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
			},
			[]string{"lab"},
		),

		labReady: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "labup",
				Subsystem: "lab",
				Name:      "ready",
				Help:      "Whether the lab answered the readiness probe (1) or not (0)",
			},
			[]string{"lab"},
		),

		labTargets: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "labup",
				Subsystem: "lab",
				Name:      "targets",
				Help:      "Number of probe targets discovered in the lab",
			},
			[]string{"lab"},
		),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "labup",
				Subsystem: "bootstrap",
				Name:      "phase_duration_seconds",
				Help:      "Duration of bootstrap phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 11), // 500ms to ~8.5min
			},
			[]string{"lab", "phase"},
		),
	}

	m.registry.MustRegister(
		m.probeAttempts,
		m.probeDuration,
		m.labReady,
		m.labTargets,
		m.phaseDuration,
	)

	return m
}

// Recording methods are nil-safe so callers can carry a nil *Metrics
// when no metrics endpoint is configured.

// RecordProbe records one readiness probe attempt.
func (m *Metrics) RecordProbe(lab, result string, seconds float64) {
	if m == nil {
		return
	}
	m.probeAttempts.WithLabelValues(lab, result).Inc()
	m.probeDuration.WithLabelValues(lab).Observe(seconds)
}

// SetReady records whether the lab currently answers its probe.
func (m *Metrics) SetReady(lab string, ready bool) {
	if m == nil {
		return
	}
	if ready {
		m.labReady.WithLabelValues(lab).Set(1)
	} else {
		m.labReady.WithLabelValues(lab).Set(0)
	}
}

// SetTargets records the number of discovered probe targets.
func (m *Metrics) SetTargets(lab string, count int) {
	if m == nil {
		return
	}
	m.labTargets.WithLabelValues(lab).Set(float64(count))
}

// RecordPhase records the duration of one bootstrap phase.
func (m *Metrics) RecordPhase(lab, phase string, seconds float64) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(lab, phase).Observe(seconds)
}

// Handler returns the HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled. It returns nil
// on a clean shutdown.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
