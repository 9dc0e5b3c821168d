// Package main provides the entry point for the autoresolve CLI.
package main

import (
	"context"
	"os"

	"github.com/gitops-tools/autoresolve/internal/cli"
	"github.com/gitops-tools/autoresolve/internal/signal"
)

// Build information set via ldflags.
var (
	version = "" //nolint:gochecknoglobals // Set at build time
	commit  = "" //nolint:gochecknoglobals // Set at build time
	date    = "" //nolint:gochecknoglobals // Set at build time
)

func main() {
	// SIGINT or SIGTERM cancels the context; the pipeline stops at the next
	// phase boundary instead of being killed mid-command.
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	os.Exit(cli.Execute(h.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
