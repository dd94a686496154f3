// Package main is the entry point for the mldeploy CLI.
//
// mldeploy provisions a cloud ML workspace's compute, environment, dataset,
// training job and online endpoint through the platform CLI, in a fixed order
// that can be re-run safely.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/systemstart/mldeploy/cmd/mldeploy/commands"
	"github.com/systemstart/mldeploy/cmd/mldeploy/handlers"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const exitUsage = 1

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *handlers.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
