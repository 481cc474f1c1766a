// Package main is the entry point for the vcprompt command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appiCli "github.com/urfave/cli/v3"

	"github.com/chmouel/vcprompt/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date)
	buildinfo.Enrich()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &appiCli.Command{
		Name:                   "vcprompt",
		Usage:                  "Version control status for your shell prompt",
		ArgsUsage:              "[directory]",
		UseShortOptionHandling: true,
		EnableShellCompletion:  true,

		Flags: globalFlags(),

		Commands: []*appiCli.Command{
			completionCommand(),
		},

		Action: run,
	}

	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vcprompt: %v\n", err)
		os.Exit(1)
	}
}
