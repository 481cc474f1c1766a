package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/chmouel/vcprompt/internal/log"
)

// CommandError describes a backend command that exited non-zero.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	cmd := e.Name + " " + strings.Join(e.Args, " ")
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		return fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("%s: %s", cmd, detail)
}

// runCommand executes a backend command in dir and returns its stdout.
// A non-zero exit becomes a CommandError carrying the captured stderr.
func runCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	log.Debugf("run: %s %s (cwd=%s)", name, strings.Join(args, " "), dir)

	// #nosec G204 -- argv comes from the fixed backend command tables
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr := &CommandError{
				Name:     name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   string(exitErr.Stderr),
			}
			log.Debugf("error: %v", cmdErr)
			return "", cmdErr
		}
		log.Debugf("error: %s: %v", name, err)
		return "", fmt.Errorf("%s: %w", name, err)
	}

	if !utf8.Valid(output) {
		return "", fmt.Errorf("%s produced invalid utf-8 output", name)
	}

	log.Debugf("ok: %s %s", name, strings.Join(args, " "))
	return string(output), nil
}
