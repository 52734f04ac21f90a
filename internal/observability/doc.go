// Package observability provides the shared logging and metrics
// plumbing for the labup command.
//
// Logging is structured (zap) and writes to stderr so it never mixes
// with the readiness lines the bootstrap observer prints on stdout.
// Metrics are registered on a private Prometheus registry and exposed
// over HTTP only when an address is configured.
package observability
