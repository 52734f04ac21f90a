// Package main is the entry point for the labup CLI.
//
// labup is a command-line tool for bringing up containerlab topologies
// and waiting until every network OS container answers a management
// plane probe. It deploys the topology, discovers the lab's containers
// from the container runtime, and gates on gNMI reachability so that
// follow-on automation never races the node boot.
//
// Commands: up, down, wait, status, init, version, completion.
//
// For detailed usage information, run:
//
//	labup --help
package main

import (
	"fmt"
	"os"

	"github.com/jbemmel/labup/cmd/labup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
