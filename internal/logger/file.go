package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// PrimaryLogPath is where cgtop logs when it has permission to do so.
const PrimaryLogPath = "/var/log/cgtop.log"

// FileLogger is a Logger backed by an append-only log file. The dashboard
// owns stdout, so this is the production backend.
type FileLogger struct {
	out     *log.Logger
	file    *os.File
	verbose bool
}

// NewFileLogger opens path for appending and returns a logger writing to it.
// Debug messages are gated on the verbose flag rather than the environment.
// The caller should Close the logger on shutdown.
func NewFileLogger(path string, verbose bool) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &FileLogger{
		out:     log.New(f, "", log.LstdFlags),
		file:    f,
		verbose: verbose,
	}, nil
}

// Close closes the underlying file.
func (l *FileLogger) Close() error {
	return l.file.Close()
}

func (l *FileLogger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.out.Printf("DEBUG "+format, args...)
	}
}

func (l *FileLogger) Info(format string, args ...interface{}) {
	l.out.Printf("INFO "+format, args...)
}

func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.out.Printf("WARN "+format, args...)
}

func (l *FileLogger) Error(format string, args ...interface{}) {
	l.out.Printf("ERROR "+format, args...)
}

// FallbackLogPath returns the per-user log location used when the primary
// path is not writable: $XDG_STATE_HOME/cgtop/cgtop.log, defaulting to
// ~/.local/state/cgtop/cgtop.log.
func FallbackLogPath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "cgtop.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "cgtop", "cgtop.log")
}

// OpenLogFile opens the primary log path, falling back to the per-user
// location when the primary is unavailable. It returns the logger and the
// path actually used.
func OpenLogFile(verbose bool) (*FileLogger, string, error) {
	if l, err := NewFileLogger(PrimaryLogPath, verbose); err == nil {
		return l, PrimaryLogPath, nil
	}

	fallback := FallbackLogPath()
	if err := os.MkdirAll(filepath.Dir(fallback), 0o755); err != nil {
		return nil, "", fmt.Errorf("create log directory: %w", err)
	}
	l, err := NewFileLogger(fallback, verbose)
	if err != nil {
		return nil, "", err
	}
	return l, fallback, nil
}
