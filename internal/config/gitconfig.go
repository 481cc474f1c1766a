package config

import (
	"os/exec"
	"strings"

	"github.com/chmouel/vcprompt/internal/log"
)

// gitConfigMock allows tests to stub git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns its raw output. A
// lookup without matches exits with code 1, which is not an error.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// repoOverrides reads vcprompt.* keys from git config, resolved in
// repoPath so local values shadow global ones. Keys are normalized by
// dropping dashes, repeated keys keep the last value like git itself.
func repoOverrides(repoPath string) (map[string]string, error) {
	output, err := runGitConfig([]string{"config", "--get-regexp", `^vcprompt\.`}, repoPath)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// "vcprompt.key value", the value may contain spaces. A bare
		// key without a value is a git boolean true.
		parts := strings.SplitN(line, " ", 2)
		key := strings.TrimPrefix(parts[0], "vcprompt.")
		key = strings.ToLower(strings.ReplaceAll(key, "-", ""))
		if key == "" {
			continue
		}

		value := ""
		if len(parts) == 2 {
			value = parts[1]
		}
		overrides[key] = value
	}
	return overrides, nil
}

// ApplyRepo overlays vcprompt.* git config keys for the repository at
// repoPath and reports whether the prompt is disabled there. Errors
// from git leave the configuration untouched.
func (c *Config) ApplyRepo(repoPath string) bool {
	overrides, err := repoOverrides(repoPath)
	if err != nil {
		log.Debugf("gitconfig: %v", err)
		return false
	}
	if len(overrides) == 0 {
		return false
	}

	if v, ok := overrides["format"]; ok {
		c.Format = v
	}
	if v, ok := overrides["minimal"]; ok {
		c.Minimal = coerceBool(v, c.Minimal)
	}
	if v, ok := overrides["color"]; ok {
		v = strings.ToLower(strings.TrimSpace(v))
		switch v {
		case ColorAlways, ColorNever, ColorAuto:
			c.Color = v
		}
	}
	if v, ok := overrides["maxbranchlen"]; ok {
		if n := coerceInt(v, c.MaxBranchLen); n >= 0 {
			c.MaxBranchLen = n
		}
	}

	if v, ok := overrides["disable"]; ok {
		return v == "" || coerceBool(v, false)
	}
	return false
}
