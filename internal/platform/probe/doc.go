// Package probe checks whether lab nodes are ready to accept
// management connections. The gnmi mode shells out to gnmic for a
// capabilities exchange, while the tcp and ssh modes dial each target
// directly. All modes take the full comma-separated target list and
// succeed only when every target answers.
package probe
