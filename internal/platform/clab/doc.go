// Package clab wraps the containerlab binary.
//
// labup never implements topology deployment itself: containerlab owns
// the lab lifecycle, and this package only builds its command lines,
// runs them, and reports their combined output. The [Runner] interface
// lets handlers swap in a fake for tests.
package clab
