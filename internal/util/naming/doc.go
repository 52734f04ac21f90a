// Package naming mirrors containerlab's naming conventions.
//
// Node containers are named clab-{lab}-{node}; the lab directory next to the
// topology file is clab-{lab}. Keeping these in one place lets discovery and
// status output translate between container names and topology node names
// without string surgery at the call sites.
package naming
