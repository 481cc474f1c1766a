// Package log provides leveled diagnostics for vcprompt. Messages go to
// stderr by default so stdout stays reserved for the prompt line; SetFile
// redirects them to a file instead.
package log

import (
	"log"
	"os"
	"sync"
)

// Verbosity levels, selected by the number of -v flags.
const (
	LevelWarn = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

// sink routes log output to stderr or, once SetFile succeeds, to a file.
// It implements io.Writer so the standard log.Logger handles formatting.
type sink struct {
	mu   sync.Mutex
	file *os.File
}

var (
	out = &sink{}
	// stdLogger wraps the sink to provide timestamped formatting.
	stdLogger = log.New(out, "", log.LstdFlags|log.Lmicroseconds)

	verbosityMu sync.Mutex
	verbosity   = LevelWarn
)

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		n, err := s.file.Write(p)
		// Sync so messages survive even when the run is interrupted.
		_ = s.file.Sync()
		return n, err
	}
	return os.Stderr.Write(p)
}

// SetVerbosity selects the highest level that still gets written.
// Values above LevelTrace clamp to LevelTrace.
func SetVerbosity(v int) {
	verbosityMu.Lock()
	defer verbosityMu.Unlock()
	if v > LevelTrace {
		v = LevelTrace
	}
	if v < LevelWarn {
		v = LevelWarn
	}
	verbosity = v
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	verbosityMu.Lock()
	defer verbosityMu.Unlock()
	return verbosity
}

// SetFile redirects log output to the given path, creating the file when
// needed. An empty path reverts to stderr.
func SetFile(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file != nil {
		_ = out.file.Close()
		out.file = nil
	}
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		return err
	}
	out.file = f
	return nil
}

// Close closes the log file if one is open and reverts output to stderr.
func Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file == nil {
		return nil
	}
	err := out.file.Close()
	out.file = nil
	return err
}

func logf(level int, tag, format string, args ...any) {
	if Verbosity() < level {
		return
	}
	stdLogger.Printf(tag+" "+format, args...)
}

// Warnf logs a message that is visible at any verbosity.
func Warnf(format string, args ...any) { logf(LevelWarn, "WARN", format, args...) }

// Infof logs a message visible at -v and above.
func Infof(format string, args ...any) { logf(LevelInfo, "INFO", format, args...) }

// Debugf logs a message visible at -vv and above.
func Debugf(format string, args ...any) { logf(LevelDebug, "DEBUG", format, args...) }

// Tracef logs a message visible at -vvv.
func Tracef(format string, args ...any) { logf(LevelTrace, "TRACE", format, args...) }
