package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appiCli "github.com/urfave/cli/v3"

	"github.com/chmouel/vcprompt/internal/config"
	"github.com/chmouel/vcprompt/internal/format"
	"github.com/chmouel/vcprompt/internal/vcs"
)

func parseFlags(t *testing.T, args ...string) *appiCli.Command {
	t.Helper()

	var got *appiCli.Command
	root := &appiCli.Command{
		Name:                   "vcprompt",
		UseShortOptionHandling: true,
		Flags:                  globalFlags(),
		Action: func(_ context.Context, cmd *appiCli.Command) error {
			got = cmd
			return nil
		},
	}
	require.NoError(t, root.Run(context.Background(), append([]string{"vcprompt"}, args...)))
	require.NotNil(t, got)
	return got
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "minimal",
			args: []string{"--minimal"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.Minimal)
			},
		},
		{
			name: "format pattern",
			args: []string{"--format", "%n %b"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "%n %b", cfg.Format)
			},
		},
		{
			name: "empty format falls back to default pattern",
			args: []string{"--format", ""},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, format.DefaultPattern, cfg.Format)
			},
		},
		{
			name: "color mode",
			args: []string{"--color", "never"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.ColorNever, cfg.Color)
			},
		},
		{
			name: "max branch len",
			args: []string{"--max-branch-len", "9"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 9, cfg.MaxBranchLen)
			},
		},
		{
			name: "negative max branch len ignored",
			args: []string{"--max-branch-len=-2"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 0, cfg.MaxBranchLen)
			},
		},
		{
			name: "debug log",
			args: []string{"--debug-log", "/tmp/vcprompt.log"},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/tmp/vcprompt.log", cfg.DebugLog)
			},
		},
		{
			name: "no flags keep config values",
			args: nil,
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parseFlags(t, tt.args...)
			cfg := config.Default()
			require.NoError(t, applyFlags(cfg, cmd))
			tt.validate(t, cfg)
		})
	}
}

func TestApplyFlagsKeepsConfigMinimal(t *testing.T) {
	cmd := parseFlags(t, "--color", "auto")

	cfg := config.Default()
	cfg.Minimal = true
	require.NoError(t, applyFlags(cfg, cmd))

	assert.True(t, cfg.Minimal)
	assert.Equal(t, config.ColorAuto, cfg.Color)
}

func TestApplyFlagsRejectsUnknownColor(t *testing.T) {
	cmd := parseFlags(t, "--color", "rainbow")

	err := applyFlags(config.Default(), cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rainbow")
}

func TestRenderMode(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		expected format.Mode
	}{
		{name: "default is detailed", cfg: config.Config{}, expected: format.Detailed},
		{name: "format pattern", cfg: config.Config{Format: "%b"}, expected: format.FormatString},
		{name: "minimal", cfg: config.Config{Minimal: true}, expected: format.Minimal},
		{name: "minimal wins over format", cfg: config.Config{Minimal: true, Format: "%b"}, expected: format.Minimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderMode(&tt.cfg))
		})
	}
}

func TestColorize(t *testing.T) {
	const in = "{cyan}main{reset}"

	tests := []struct {
		name     string
		mode     string
		tty      bool
		expected string
	}{
		{name: "always on pipe", mode: config.ColorAlways, tty: false, expected: "\x1b[36mmain\x1b[00m"},
		{name: "always on tty", mode: config.ColorAlways, tty: true, expected: "\x1b[36mmain\x1b[00m"},
		{name: "never on tty", mode: config.ColorNever, tty: true, expected: "main"},
		{name: "auto on tty", mode: config.ColorAuto, tty: true, expected: "\x1b[36mmain\x1b[00m"},
		{name: "auto on pipe", mode: config.ColorAuto, tty: false, expected: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, colorize(in, tt.mode, tt.tty))
		})
	}
}

func TestDetectRepo(t *testing.T) {
	t.Run("missing directory argument errors", func(t *testing.T) {
		_, _, err := detectRepo(filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
	})

	t.Run("outside any repository", func(t *testing.T) {
		repo, ok, err := detectRepo(t.TempDir())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, repo)
	})

	t.Run("git repository", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o600))

		repo, ok, err := detectRepo(dir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, vcs.Git, repo.System)
	})
}

func TestCompletionScriptsEmbedded(t *testing.T) {
	assert.Contains(t, string(bashCompletion), "complete -F _vcprompt vcprompt")
	assert.Contains(t, string(zshCompletion), "#compdef vcprompt")
}
