// Package debug provides the process-wide diagnostic log. Console output is
// only produced when debug mode is on; a log file, when configured, receives
// every entry regardless.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
	logFile *os.File
	logger  = zerolog.Nop()
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	rebuild()
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	rebuild()
}

// SetOutput redirects console output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
	rebuild()
}

// SetLogFile appends every log entry to path as JSON lines.
// An empty path closes any open log file.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			rebuild()
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			rebuild()
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
	}
	rebuild()
	return nil
}

// Close releases the log file, if any.
func Close() {
	_ = SetLogFile("")
}

// rebuild recreates the logger from the current settings. Callers hold mu.
func rebuild() {
	var writers []io.Writer
	if enabled {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor,
			TimeFormat: "15:04:05.000",
			FormatLevel: func(i interface{}) string {
				return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
			},
		})
	}
	if logFile != nil {
		writers = append(writers, logFile)
	}
	if len(writers) == 0 {
		logger = zerolog.Nop()
		return
	}
	logger = zerolog.New(io.MultiWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// Logger returns the current logger for structured events.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// Warn records a non-fatal problem.
func Warn(format string, args ...interface{}) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	Debug("=== %s ===", section)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	l := Logger()
	l.Debug().Msgf("%s = %v", key, value)
}
