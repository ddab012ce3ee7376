package logger

import (
	"io"
	"log"
	"reflect"
	"runtime"
	"strings"

	"github.com/philipp01105/ttylog/core"
)

// StdlogName is the logger name of entries captured from the standard
// library log package.
const StdlogName = "stdlog"

// stdlog holds the log package settings replaced by capture.
// Guarded by factoryMu.
var stdlog struct {
	captured bool
	writer   io.Writer
	flags    int
}

// captureStdlog must be called with factoryMu held
func captureStdlog(enable bool) {
	if enable == stdlog.captured {
		return
	}
	if enable {
		stdlog.writer, stdlog.flags = log.Writer(), log.Flags()
		log.SetFlags(0)
		log.SetOutput(stdlogWriter{})
		stdlog.captured = true
		return
	}
	log.SetOutput(stdlog.writer)
	log.SetFlags(stdlog.flags)
	stdlog.captured = false
}

// stdlogWriter turns each line written by the log package into a WARN
// entry on the root channel.
type stdlogWriter struct{}

func (stdlogWriter) Write(p []byte) (int, error) {
	root := Root()
	if !root.Enabled(core.WarnLevel) {
		return len(p), nil
	}

	entry := core.GetEntry()
	entry.Level = core.WarnLevel
	entry.Logger = StdlogName
	entry.Message = strings.TrimRight(string(p), "\r\n")
	entry.Thread = core.GoroutineName()
	entry.Caller = stdlogCaller()
	_ = root.Handle(entry)
	core.PutEntry(entry)
	return len(p), nil
}

var ownPackage = reflect.TypeOf(stdlogWriter{}).PkgPath() + "."

// stdlogCaller returns the first frame outside the log packages and
// this one.
func stdlogCaller() core.CallerInfo {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !isLogFrame(f.Function) {
			return core.CallerInfo{File: f.File, Line: f.Line, Function: f.Function, Defined: true}
		}
		if !more {
			return core.CallerInfo{}
		}
	}
}

func isLogFrame(fn string) bool {
	return strings.HasPrefix(fn, "log.") ||
		strings.HasPrefix(fn, "log/slog.") ||
		strings.HasPrefix(fn, ownPackage)
}
