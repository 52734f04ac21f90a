package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Fetch             time.Duration // Timeout for downloading a remote topology
	Deploy            time.Duration // Timeout for the containerlab deploy subprocess
	Destroy           time.Duration // Timeout for the containerlab destroy subprocess
	Discover          time.Duration // Timeout for one container discovery pass
	Ready             time.Duration // Overall readiness gate deadline; 0 waits forever
	RetryMaxAttempts  int           // Maximum number of retry attempts for transient operations
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - LABUP_TIMEOUT_FETCH (default: 2m)
//   - LABUP_TIMEOUT_DEPLOY (default: 10m)
//   - LABUP_TIMEOUT_DESTROY (default: 5m)
//   - LABUP_TIMEOUT_DISCOVER (default: 30s)
//   - LABUP_TIMEOUT_READY (default: 0, wait forever)
//   - LABUP_RETRY_MAX_ATTEMPTS (default: 5)
//   - LABUP_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Fetch:             parseDuration("LABUP_TIMEOUT_FETCH", 2*time.Minute),
		Deploy:            parseDuration("LABUP_TIMEOUT_DEPLOY", 10*time.Minute),
		Destroy:           parseDuration("LABUP_TIMEOUT_DESTROY", 5*time.Minute),
		Discover:          parseDuration("LABUP_TIMEOUT_DISCOVER", 30*time.Second),
		Ready:             parseDuration("LABUP_TIMEOUT_READY", 0),
		RetryMaxAttempts:  parseInt("LABUP_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("LABUP_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
