// Package main provides CLI flag definitions for vcprompt.
package main

import (
	appiCli "github.com/urfave/cli/v3"
)

// globalFlags returns all flags of the root command.
func globalFlags() []appiCli.Flag {
	return []appiCli.Flag{
		&appiCli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Render a printf-style pattern instead of the detailed layout",
		},
		&appiCli.BoolFlag{
			Name:    "minimal",
			Aliases: []string{"m"},
			Usage:   "Use the minimal layout",
		},
		&appiCli.StringFlag{
			Name:  "color",
			Usage: "When to emit ANSI colors: always, never or auto",
		},
		&appiCli.IntFlag{
			Name:  "max-branch-len",
			Usage: "Truncate branch names longer than this",
		},
		&appiCli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "Keep running and re-render when the repository changes",
		},
		&appiCli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&appiCli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&appiCli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Increase log verbosity (repeatable)",
		},
		&appiCli.BoolFlag{
			Name:    "version",
			Aliases: []string{"V"},
			Usage:   "Print version information and exit",
		},
	}
}
