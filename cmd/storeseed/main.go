// Package main is the entry point for the storeseed CLI.
//
// storeseed provisions the B2B catalog hierarchy (root category, website,
// store group and locale stores) into a SQLite database, once, and serves a
// small admin API around it.
//
// Commands: migrate, apply, show, serve, version.
package main

import (
	"fmt"
	"os"

	"github.com/johnwards/storeseed/cmd/storeseed/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.SetVersionInfo(version, commit)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
