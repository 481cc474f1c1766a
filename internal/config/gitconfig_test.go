package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withGitConfigOutput(t *testing.T, output string, err error) {
	t.Helper()
	gitConfigMock = func(_ []string, _ string) (string, error) {
		return output, err
	}
	t.Cleanup(func() { gitConfigMock = nil })
}

func TestRepoOverrides(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected map[string]string
	}{
		{
			name: "single values",
			output: `vcprompt.disable true
vcprompt.color never`,
			expected: map[string]string{
				"disable": "true",
				"color":   "never",
			},
		},
		{
			name:   "value with spaces",
			output: "vcprompt.format %n %b %o",
			expected: map[string]string{
				"format": "%n %b %o",
			},
		},
		{
			name:   "bare key is boolean true",
			output: "vcprompt.disable",
			expected: map[string]string{
				"disable": "",
			},
		},
		{
			name: "repeated key keeps last value",
			output: `vcprompt.color never
vcprompt.color always`,
			expected: map[string]string{
				"color": "always",
			},
		},
		{
			name:   "dashes dropped from key",
			output: "vcprompt.max-branch-len 12",
			expected: map[string]string{
				"maxbranchlen": "12",
			},
		},
		{
			name:     "empty output",
			output:   "",
			expected: map[string]string{},
		},
		{
			name:     "whitespace only",
			output:   "   \n\n  ",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withGitConfigOutput(t, tt.output, nil)

			overrides, err := repoOverrides("/repo")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, overrides)
		})
	}
}

func TestRepoOverridesError(t *testing.T) {
	withGitConfigOutput(t, "", errors.New("no git in PATH"))

	_, err := repoOverrides("/repo")
	require.Error(t, err)
}

func TestApplyRepo(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		disabled bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:     "no keys",
			output:   "",
			disabled: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name:     "disable true",
			output:   "vcprompt.disable true",
			disabled: true,
		},
		{
			name:     "bare disable",
			output:   "vcprompt.disable",
			disabled: true,
		},
		{
			name:     "disable false",
			output:   "vcprompt.disable false",
			disabled: false,
		},
		{
			name:   "overrides applied",
			output: "vcprompt.format %b\nvcprompt.minimal true\nvcprompt.color never\nvcprompt.maxbranchlen 8",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "%b", cfg.Format)
				assert.True(t, cfg.Minimal)
				assert.Equal(t, ColorNever, cfg.Color)
				assert.Equal(t, 8, cfg.MaxBranchLen)
			},
		},
		{
			name:   "invalid color ignored",
			output: "vcprompt.color rainbow",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ColorAlways, cfg.Color)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withGitConfigOutput(t, tt.output, nil)

			cfg := Default()
			assert.Equal(t, tt.disabled, cfg.ApplyRepo("/repo"))
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestApplyRepoGitError(t *testing.T) {
	withGitConfigOutput(t, "", errors.New("boom"))

	cfg := Default()
	assert.False(t, cfg.ApplyRepo("/repo"))
	assert.Equal(t, Default(), cfg)
}
