package logger

import (
	"fmt"
	"sync"

	"github.com/philipp01105/ttylog/core"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// The root logger: everything goes through the root channel, which
	// prints WARN and above to stderr until Bootstrap attaches handlers.
	defaultLogger = GetLogger("")
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger.
// Each passes one extra frame so the caller is reported correctly.

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	logDefault(core.TraceLevel, msg, nil, fields)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	logDefault(core.DebugLevel, msg, nil, fields)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	logDefault(core.InfoLevel, msg, nil, fields)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	logDefault(core.WarnLevel, msg, nil, fields)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	logDefault(core.ErrorLevel, msg, nil, fields)
}

// Exception logs err at ERROR level using the default logger
func Exception(err error, msg string, fields ...core.Field) {
	logDefault(core.ErrorLevel, msg, err, fields)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, fields ...core.Field) {
	logDefault(core.FatalLevel, msg, nil, fields)
	osExit(1)
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...any) {
	logDefault(core.TraceLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...any) {
	logDefault(core.DebugLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...any) {
	logDefault(core.InfoLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...any) {
	logDefault(core.WarnLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...any) {
	logDefault(core.ErrorLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...any) {
	logDefault(core.FatalLevel, fmt.Sprintf(format, args...), nil, nil)
	osExit(1)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

func logDefault(level core.Level, msg string, err error, fields []core.Field) {
	l := Default()
	if !l.Enabled(level) {
		return
	}
	l.log(1, level, msg, err, fields)
}
