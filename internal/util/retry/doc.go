// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used for topology fetches and
// container-runtime API calls that may fail transiently. The readiness gate
// does NOT use this package: waiting for a lab is a fixed-interval poll with
// no cap, not a bounded backoff.
package retry
