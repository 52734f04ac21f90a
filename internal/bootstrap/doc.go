// Package bootstrap orchestrates bringing a lab up: fetching the
// topology, deploying it with containerlab, discovering the resulting
// containers, and gating on management-plane readiness.
//
// The work is organized as sequential phases sharing a Context. Phases
// report through an Observer so the same pipeline can drive plain
// console output or the interactive watch UI.
package bootstrap
