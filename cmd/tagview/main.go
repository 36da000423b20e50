package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/tagview/cmd/tagview/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.SetVersionInfo(version, commit, date)

	// Errors are printed by the printer package with color formatting
	if err := commands.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
