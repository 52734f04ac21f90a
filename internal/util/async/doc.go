// Package async provides utilities for parallel task execution with
// error collection.
//
// The [RunParallel] function executes multiple named operations
// concurrently and returns the first error. It is used by the probers
// to check many lab nodes at once.
package async
