package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned for a severity outside the defined set.
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity level of a log entry.
// The zero value NotSetLevel lets everything through a level gate.
type Level int8

const (
	// NotSetLevel marks a handler or channel without its own threshold
	NotSetLevel Level = iota
	// TraceLevel for very fine grained diagnostics
	TraceLevel
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages
	FatalLevel
)

var levelNames = [...]string{
	NotSetLevel: "NOTSET",
	TraceLevel:  "TRACE",
	DebugLevel:  "DEBUG",
	InfoLevel:   "INFO",
	WarnLevel:   "WARN",
	ErrorLevel:  "ERROR",
	FatalLevel:  "FATAL",
}

// Levels returns every defined level in ascending order of severity.
func Levels() []Level {
	return []Level{NotSetLevel, TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= NotSetLevel && int(l) < len(levelNames)
}

// String returns the string representation of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int8(l))
}

// Enabled reports whether an entry at level l passes a gate set to min.
func (l Level) Enabled(min Level) bool {
	return min == NotSetLevel || l >= min
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts "warning" and "critical" as aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET", "":
		return NotSetLevel, nil
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL", "CRITICAL":
		return FatalLevel, nil
	}
	return NotSetLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int8(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so levels can be
// decoded from configuration files by name.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
