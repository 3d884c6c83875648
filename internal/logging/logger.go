// Package logging provides the diagnostic logger for the server.
//
// All output goes to stderr (or an injected writer); stdout is reserved for
// MCP protocol frames and must never receive log lines.
package logging

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes used when color output is enabled.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Logger writes diagnostic messages to a writer, stderr by default.
// A nil *Logger is safe to use; all methods become no-ops.
type Logger struct {
	verbose  bool
	useColor bool
	writer   io.Writer
}

// NewLogger creates a logger writing to stderr.
func NewLogger(verbose, useColor bool) *Logger {
	return NewLoggerWithWriter(verbose, useColor, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing to the given writer.
// Used by tests to capture output.
func NewLoggerWithWriter(verbose, useColor bool, w io.Writer) *Logger {
	return &Logger{
		verbose:  verbose,
		useColor: useColor,
		writer:   w,
	}
}

// SetVerbose toggles verbose (debug) output.
func (l *Logger) SetVerbose(verbose bool) {
	if l == nil {
		return
	}
	l.verbose = verbose
}

// SetWriter replaces the output writer.
func (l *Logger) SetWriter(w io.Writer) {
	if l == nil {
		return
	}
	l.writer = w
}

func (l *Logger) log(color, prefix, format string, args ...interface{}) {
	if l == nil || l.writer == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.useColor && color != "" {
		fmt.Fprintf(l.writer, "%s%s%s%s\n", color, prefix, msg, colorReset)
	} else {
		fmt.Fprintf(l.writer, "%s%s\n", prefix, msg)
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(colorCyan, "", format, args...)
}

// Success logs a success message.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log(colorGreen, "", format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(colorYellow, "Warning: ", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(colorRed, "Error: ", format, args...)
}

// Debug logs a message only when verbose output is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.log(colorGray, "", format, args...)
}

// InfoVerbose logs an informational message only in verbose mode.
func (l *Logger) InfoVerbose(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.Info(format, args...)
}

// WarningVerbose logs a warning only in verbose mode.
func (l *Logger) WarningVerbose(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.Warning(format, args...)
}
