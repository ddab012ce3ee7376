package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/ttylog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes, newline terminated, without
	// terminal escape sequences
	Format(entry *core.Entry) ([]byte, error)
}

// TTYFormatter is implemented by formatters that can colour their output.
// Stream handlers pass the terminal status of their writer at each call.
type TTYFormatter interface {
	FormatTTY(entry *core.Entry, isTTY bool) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer.
	// Nothing is written when formatting fails.
	FormatTo(entry *core.Entry, w io.Writer) error
}

// Config holds the formatter configuration
type Config struct {
	// Format is the message template; empty selects DefaultFormat
	Format string
	// TimestampFormat is a time layout; empty selects DefaultTimestampFormat
	TimestampFormat string
	// PathLimit bounds the caller column. Zero derives it from the
	// caller width in Format.
	PathLimit int
	// BaseDir is stripped from caller paths. Empty means the working
	// directory at render time.
	BaseDir string
	// DisableColor turns off escape sequences even on terminals
	DisableColor bool
	// ColorAttrs maps attributes to palette colour names. An empty
	// colour name means the colour of the event's level. Nil colours
	// the level only.
	ColorAttrs map[string]string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
