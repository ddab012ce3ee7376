package logger

import (
	"fmt"
	"os"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// callerSkip is the frame depth from log to the code calling a Logger method.
const callerSkip = 2

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	channel       *Channel
	level         core.Level
	name          string
	fields        []core.Field
	includeCaller bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	name          string
	fields        []core.Field
	includeCaller bool
}

// NewBuilder creates a new logger builder.
// The level defaults to NotSetLevel, leaving filtering to the handler.
func NewBuilder() *Builder {
	return &Builder{level: core.NotSetLevel}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithChannel routes the logger through c
func (b *Builder) WithChannel(c *Channel) *Builder {
	b.handler = c
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithName sets the logger name carried by every entry
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	l := &Logger{
		handler:       b.handler,
		level:         b.level,
		name:          b.name,
		fields:        append([]core.Field(nil), b.fields...),
		includeCaller: b.includeCaller,
	}
	l.channel, _ = b.handler.(*Channel)
	return l
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := l.clone()
	c.fields = newFields
	return c
}

// Named returns a copy of the logger with a different name
func (l *Logger) Named(name string) *Logger {
	c := l.clone()
	c.name = name
	return c
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Enabled reports whether an entry at level would reach a handler
func (l *Logger) Enabled(level core.Level) bool {
	if l.handler == nil || !level.Enabled(l.level) {
		return false
	}
	if l.channel != nil {
		return l.channel.Enabled(level)
	}
	return true
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	if !l.Enabled(level) {
		return
	}
	l.log(0, level, msg, nil, fields)
}

// log builds the entry and hands it to the handler. skip counts extra
// frames between the caller and the public method.
func (l *Logger) log(skip int, level core.Level, msg string, err error, fields []core.Field) {
	entry := core.GetEntry()
	entry.Level = level
	entry.Logger = l.name
	entry.Message = msg
	entry.Thread = core.GoroutineName()

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(callerSkip + skip)
	}
	if err != nil {
		entry.Exception = core.NewException(err, callerSkip+skip)
	}

	// failures are reported by the channel or dropped, like the entry
	_ = l.handler.Handle(entry)
	core.PutEntry(entry)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(0, core.TraceLevel, msg, nil, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(0, core.DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(0, core.InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(0, core.WarnLevel, msg, nil, fields)
}

// Warning is an alias for Warn
func (l *Logger) Warning(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(0, core.WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(0, core.ErrorLevel, msg, nil, fields)
}

// Exception logs err at ERROR level. The rendered message is the one-line
// description of err and the place it was logged; msg is kept for
// handlers that ignore exceptions.
func (l *Logger) Exception(err error, msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(0, core.ErrorLevel, msg, err, fields)
}

// Critical logs at FATAL level without exiting
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if !l.Enabled(core.FatalLevel) {
		return
	}
	l.log(0, core.FatalLevel, msg, nil, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	if l.Enabled(core.FatalLevel) {
		l.log(0, core.FatalLevel, msg, nil, fields)
	}
	osExit(1)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...any) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(0, core.TraceLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(0, core.DebugLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(0, core.InfoLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(0, core.WarnLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(0, core.ErrorLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Criticalf logs at FATAL level with formatting, without exiting
func (l *Logger) Criticalf(format string, args ...any) {
	if !l.Enabled(core.FatalLevel) {
		return
	}
	l.log(0, core.FatalLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...any) {
	if l.Enabled(core.FatalLevel) {
		l.log(0, core.FatalLevel, fmt.Sprintf(format, args...), nil, nil)
	}
	osExit(1)
}

// Close closes the logger's handler. For a channel-bound logger this
// resets the channel.
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
