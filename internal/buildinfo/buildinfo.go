// Package buildinfo centralises build metadata for the vcprompt binary.
// The linker injects values into cmd/vcprompt/main.go; main() calls Set()
// to forward them here so every other package can query them.
package buildinfo

import "runtime/debug"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// Enrich fills missing metadata from runtime/debug.ReadBuildInfo(),
// which covers `go install` builds that bypass the linker flags.
func Enrich() {
	if commit != "none" && date != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "none" {
				commit = setting.Value
			}
		case "vcs.time":
			if date == "unknown" {
				date = setting.Value
			}
		}
	}
}

// String returns a one-line description suitable for --version output.
func String() string {
	out := version
	if commit == "none" {
		return out
	}
	short := commit
	if len(short) > 12 {
		short = short[:12]
	}
	out += " (" + short
	if date != "unknown" {
		out += " " + date
	}
	return out + ")"
}
