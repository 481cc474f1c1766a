// Package config loads vcprompt settings from a YAML file and overlays
// VCP_* environment variables on top. Repository-local git settings and
// command-line flags are applied later by the caller, so the precedence
// is defaults, file, environment, repository, flags.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chmouel/vcprompt/internal/format"
	"github.com/chmouel/vcprompt/internal/log"
)

// Color output modes.
const (
	ColorAlways = "always"
	ColorNever  = "never"
	ColorAuto   = "auto"
)

// Config holds every tunable of the prompt renderer.
type Config struct {
	Templates format.Templates
	// Format is a %-directive pattern. Non-empty selects the
	// format-string layout.
	Format string
	// Minimal selects the compact branch-plus-markers layout.
	Minimal bool
	// Color is always, never or auto. The default is always, a prompt
	// renders through command substitution where stdout is a pipe.
	// Auto emits escapes only when stdout is a terminal.
	Color string
	// MaxBranchLen truncates longer branch names. Zero keeps them whole.
	MaxBranchLen int
	// DebugLog redirects diagnostic output to a file.
	DebugLog string
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Templates: format.DefaultTemplates(),
		Color:     ColorAlways,
	}
}

// Load reads the configuration. An explicit path wins; otherwise
// config.yaml then config.yml under the XDG config directory are
// tried. A missing file or malformed YAML falls back to defaults, a
// prompt helper must never fail over its own configuration.
// Environment overrides are applied before returning.
func Load(configPath string) (*Config, error) {
	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return Default(), err
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return Default(), err
		}
		paths = []string{abs}
	} else {
		base := filepath.Join(configDir(), "vcprompt")
		paths = []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		}
	}

	cfg := Default()
	for _, path := range paths {
		// #nosec G304 -- the path comes from the user's own flag or config dir
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			log.Warnf("config: ignoring malformed %s: %v", path, err)
			break
		}

		cfg = parse(yamlData)
		break
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays VCP_* variables onto the configuration. A variable
// that is set but empty still overrides, so exporting VCP_CLEAN= hides
// the clean marker.
func (c *Config) ApplyEnv() {
	for key, dst := range templateFields(&c.Templates) {
		if v, ok := os.LookupEnv("VCP_" + strings.ToUpper(key)); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("VCP_FORMAT"); ok {
		c.Format = v
	}
}

func parse(data map[string]any) *Config {
	cfg := Default()

	if pattern, ok := data["format"].(string); ok {
		cfg.Format = pattern
	}
	cfg.Minimal = coerceBool(data["minimal"], false)

	if mode, ok := data["color"].(string); ok {
		mode = strings.ToLower(strings.TrimSpace(mode))
		switch mode {
		case ColorAlways, ColorNever, ColorAuto:
			cfg.Color = mode
		}
	}

	cfg.MaxBranchLen = coerceInt(data["max_branch_len"], 0)
	if cfg.MaxBranchLen < 0 {
		cfg.MaxBranchLen = 0
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		cfg.DebugLog = strings.TrimSpace(debugLog)
	}

	if raw, ok := data["templates"].(map[string]any); ok {
		parseTemplates(raw, &cfg.Templates)
	}

	return cfg
}

// parseTemplates keeps template values verbatim. Leading and trailing
// whitespace is significant in prompt fragments.
func parseTemplates(raw map[string]any, t *format.Templates) {
	for key, dst := range templateFields(t) {
		if v, ok := raw[key].(string); ok {
			*dst = v
		}
	}
}

// templateFields maps config and environment key names onto the
// template set.
func templateFields(t *format.Templates) map[string]*string {
	return map[string]*string{
		"prefix":    &t.Prefix,
		"suffix":    &t.Suffix,
		"separator": &t.Separator,
		"name":      &t.Name,
		"branch":    &t.Branch,
		"commit":    &t.Commit,
		"operation": &t.Operation,
		"behind":    &t.Behind,
		"ahead":     &t.Ahead,
		"staged":    &t.Staged,
		"changed":   &t.Changed,
		"conflicts": &t.Conflicts,
		"untracked": &t.Untracked,
		"clean":     &t.Clean,
		"diff":      &t.Diff,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func configDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ExpandPath resolves a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
