package core

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// GoroutineID returns the id of the calling goroutine, or 0 when the
// runtime header cannot be parsed.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// GoroutineName names the calling goroutine for the thread column:
// "main" for the main goroutine and "goroutine-N" for the rest.
func GoroutineName() string {
	id := GoroutineID()
	switch id {
	case 0:
		return "unknown"
	case 1:
		return "main"
	}
	return "goroutine-" + strconv.FormatUint(id, 10)
}
