// Package main is the entry point for the blockdemo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cxterm/blockengine/cmd/blockdemo"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	blockdemo.SetVersion(versionString)
	if err := blockdemo.Execute(); err != nil {
		os.Exit(1)
	}
}
