package main

import (
	"context"
	"fmt"
	"os"

	_ "embed"

	appiCli "github.com/urfave/cli/v3"
)

//go:embed templates/zsh_completion.zsh
var zshCompletion []byte

//go:embed templates/bash_completion.bash
var bashCompletion []byte

// completionCommand returns the completion subcommand definition.
func completionCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action:    handleCompletion,
	}
}

func handleCompletion(_ context.Context, cmd *appiCli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("usage: vcprompt completion <bash|zsh>")
	}

	switch shell := cmd.Args().First(); shell {
	case "bash":
		_, _ = os.Stdout.Write(bashCompletion)
	case "zsh":
		_, _ = os.Stdout.Write(zshCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
	return nil
}
