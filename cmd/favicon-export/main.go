// Package main is the entry point for the favicon-export CLI.
//
// The binary converts a source image into the site's .ico favicon set. It
// delegates all functionality to the internal/cli package, which defines
// the cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release build. During development they default to "dev",
// "none" and "unknown".
package main

import (
	"github.com/shinji-kodama/favicon-export/internal/cli"
)

// version, commit, and date are set at build time via ldflags
// (-X main.version=...). They provide binary identification for the
// --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
