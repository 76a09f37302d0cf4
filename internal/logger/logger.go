// Package logger provides leveled logging for ideaforge.
//
// Debug, Info and Section output is shown only in verbose mode (the
// --verbose flag) and traces what the analyses do. Warnings, such as a
// skipped file or an invalid catalog pattern, are shown unless quiet mode
// is on. Everything goes to stderr so stdout stays machine-readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses warnings. Verbose mode overrides it.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write holds the write lock so concurrent messages never interleave.
func write(show func() bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if show() {
		fmt.Fprintf(output, format, args...)
	}
}

func isVerbose() bool { return verbose }

func warnings() bool { return verbose || !quiet }

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(isVerbose, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	write(isVerbose, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(isVerbose, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning unless quiet mode is enabled.
func Warn(format string, args ...any) {
	write(warnings, "[WARN] "+format+"\n", args...)
}
