package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// ShellFile is the source file reported for code typed into an
// interactive shell rather than loaded from a file.
const ShellFile = "<stdin>"

var pid = os.Getpid()

// Entry represents a single log event with all its metadata.
// An Entry is immutable once handed to a handler.
type Entry struct {
	Time      time.Time
	Level     Level
	Logger    string
	Message   string
	Args      []any
	Fields    []Field
	Thread    string
	PID       int
	Caller    CallerInfo
	Exception *Exception
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// ShortFile returns the base name of the caller's file.
func (c CallerInfo) ShortFile() string {
	return filepath.Base(c.File)
}

// RenderMessage fills the message template with the positional args and
// appends keyword fields as key=value pairs.
func (e *Entry) RenderMessage() string {
	msg := e.Message
	if len(e.Args) > 0 {
		msg = fmt.Sprintf(e.Message, e.Args...)
	}
	if len(e.Fields) == 0 {
		return msg
	}
	b := make([]byte, 0, len(msg)+16*len(e.Fields))
	b = append(b, msg...)
	for _, field := range e.Fields {
		b = append(b, ' ')
		b = field.AppendText(b)
	}
	return string(b)
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool, stamped with the current
// time and process id.
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.PID = pid
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Args = nil
	e.Logger = ""
	e.Thread = ""
	e.Exception = nil
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:     file,
		Line:     line,
		Function: funcName,
		Defined:  true,
	}
}
