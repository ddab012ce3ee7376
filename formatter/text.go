package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/palette"
	"github.com/philipp01105/ttylog/singleton"
)

const (
	// DefaultFormat renders
	// "<time>.<ms> <LEVEL> <pid> [<thread>] <caller>:<line> - <message>".
	DefaultFormat = "{time}.{msecs:03} {level:8} {pid:8} [{thread:16}] {caller:30}:{line:03} - {message}"
	// DefaultTimestampFormat is the time layout used when none is configured
	DefaultTimestampFormat = "Jan 02, 2006 15:04:05"
	// DefaultPathLimit applies when the caller placeholder has no width
	DefaultPathLimit = 27
)

// ErrUnknownColor is returned when ColorAttrs names a colour missing from
// the palette.
var ErrUnknownColor = errors.New("formatter: unknown colour")

// levelColors binds every level to its palette colour.
var levelColors = [...]string{
	core.NotSetLevel: "aqua",
	core.TraceLevel:  "dark_violet",
	core.DebugLevel:  "grey_50",
	core.InfoLevel:   "green_3",
	core.WarnLevel:   "yellow_3",
	core.ErrorLevel:  "orange_red_1",
	core.FatalLevel:  "red_1",
}

// LevelColor returns the escape sequence for l. Levels outside the
// defined set fail with core.ErrUnknownLevel.
func LevelColor(l core.Level) (string, error) {
	if !l.Valid() {
		return "", fmt.Errorf("%w: %d", core.ErrUnknownLevel, int(l))
	}
	return palette.MustLookup(levelColors[l]), nil
}

// TextFormatter renders entries through a message template, normalising
// the caller location, collapsing exceptions onto one line and colouring
// configured attributes on terminals.
// A TextFormatter is immutable and safe for concurrent use.
type TextFormatter struct {
	cfg       Config
	segments  []segment
	parseErr  error
	pathLimit int
	colors    map[string]string // attr -> escape sequence, "" = level colour
	colorErr  error
}

// NewTextFormatter creates a new text formatter.
// A malformed template is not reported here; every Render returns it.
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}

	f := &TextFormatter{cfg: cfg}
	f.segments, f.parseErr = parseTemplate(cfg.Format)

	f.pathLimit = cfg.PathLimit
	if f.pathLimit <= 0 {
		f.pathLimit = DefaultPathLimit
		if w := widthOf(f.segments, AttrCaller); w > len(ellipsis) {
			f.pathLimit = w - len(ellipsis)
		}
	}

	attrs := cfg.ColorAttrs
	if attrs == nil {
		attrs = map[string]string{AttrLevel: ""}
	}
	f.colors = make(map[string]string, len(attrs))
	for attr, name := range attrs {
		if name == "" {
			f.colors[attr] = ""
			continue
		}
		seq, ok := palette.Lookup(name)
		if !ok {
			f.colorErr = errors.Join(f.colorErr, fmt.Errorf("%w: %q for %s", ErrUnknownColor, name, attr))
			continue
		}
		f.colors[attr] = seq
	}
	return f
}

var defaultKey = struct{ name string }{"formatter.default"}

// Default returns the process-wide formatter built from the zero Config.
func Default() *TextFormatter {
	f, _ := singleton.Keyed(singleton.Default(), defaultKey, func() (*TextFormatter, error) {
		return NewTextFormatter(Config{}), nil
	})
	return f
}

// Config returns the effective configuration
func (f *TextFormatter) Config() Config {
	return f.cfg
}

// PathLimit returns the caller column limit in effect
func (f *TextFormatter) PathLimit() int {
	return f.pathLimit
}

// Err reports a template error found at construction
func (f *TextFormatter) Err() error {
	return f.parseErr
}

// Render formats entry into a single line without trailing newline.
// When isTTY is true and colour is enabled the configured attributes are
// wrapped in their escape sequences.
func (f *TextFormatter) Render(entry *core.Entry, isTTY bool) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.render(entry, isTTY, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Format formats an entry as plain text followed by a newline
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return f.FormatTTY(entry, false)
}

// FormatTTY formats an entry, coloured when isTTY is true, followed by a
// newline
func (f *TextFormatter) FormatTTY(entry *core.Entry, isTTY bool) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.render(entry, isTTY, buf); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.render(entry, false, buf); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *TextFormatter) render(entry *core.Entry, isTTY bool, buf *bytes.Buffer) error {
	if f.parseErr != nil {
		return f.parseErr
	}
	color := isTTY && !f.cfg.DisableColor
	var levelSeq string
	if color {
		if f.colorErr != nil {
			return f.colorErr
		}
		seq, err := LevelColor(entry.Level)
		if err != nil {
			return err
		}
		levelSeq = seq
	}

	var scratch [64]byte
	for i := range f.segments {
		seg := &f.segments[i]
		if seg.attr == "" {
			buf.WriteString(seg.literal)
			continue
		}

		var value string
		numeric := false
		switch seg.attr {
		case AttrTime:
			value = string(entry.Time.AppendFormat(scratch[:0], f.cfg.TimestampFormat))
		case AttrMsecs:
			value, numeric = strconv.Itoa(entry.Time.Nanosecond()/1e6), true
		case AttrLevel:
			value = entry.Level.String()
		case AttrPID:
			value, numeric = strconv.Itoa(entry.PID), true
		case AttrThread:
			value = entry.Thread
		case AttrCaller:
			value = f.caller(entry)
		case AttrLine:
			value, numeric = strconv.Itoa(entry.Caller.Line), true
		case AttrMessage:
			value = message(entry)
		case AttrName:
			value = entry.Logger
			if value == "" {
				value = "root"
			}
		case AttrFile:
			if entry.Caller.File != "" {
				value = filepath.Base(entry.Caller.File)
			}
		case AttrFunction:
			value = FunctionName(entry.Caller.Function)
		}

		seq, colored := f.colors[seg.attr]
		colored = colored && color
		if colored {
			if seq == "" {
				seq = levelSeq
			}
			buf.WriteString(seq)
		}
		writePadded(buf, value, seg, numeric)
		if colored {
			buf.WriteString(palette.Reset)
		}
	}

	// trim trailing newlines
	out := buf.Bytes()
	n := len(out)
	for n > 0 && (out[n-1] == '\n' || out[n-1] == '\r') {
		n--
	}
	buf.Truncate(n)
	return nil
}

func (f *TextFormatter) caller(entry *core.Entry) string {
	base := f.cfg.BaseDir
	if base == "" {
		base, _ = os.Getwd()
	}
	return Truncate(NormalizeCaller(entry.Caller.File, entry.Caller.Function, base), f.pathLimit)
}

// message returns the rendered message, or the one-line exception text
// when the entry carries an exception.
func message(entry *core.Entry) string {
	if entry.Exception != nil {
		return FormatException(entry.Exception)
	}
	return entry.RenderMessage()
}

// FormatException renders an exception as
// "<Type>: <message> in <func>() on line <N>", or
// "<Type>: <message> on line <N>" for package-level code.
// Line breaks inside the message are folded into spaces.
func FormatException(exc *core.Exception) string {
	where := "on"
	if !exc.TopLevel() {
		where = "in " + FunctionName(exc.Function) + "() on"
	}
	text := fmt.Sprintf("%s: %s %s line %d", exc.Type, exc.Message, where, exc.Line)
	return foldNewlines.Replace(text)
}

var foldNewlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func writePadded(buf *bytes.Buffer, value string, seg *segment, numeric bool) {
	pad := seg.width - utf8.RuneCountInString(value)
	if pad <= 0 {
		buf.WriteString(value)
		return
	}
	if seg.left {
		buf.WriteString(value)
		writeRepeat(buf, ' ', pad)
		return
	}
	if seg.zero && numeric {
		if strings.HasPrefix(value, "-") {
			buf.WriteByte('-')
			value = value[1:]
		}
		writeRepeat(buf, '0', pad)
		buf.WriteString(value)
		return
	}
	writeRepeat(buf, ' ', pad)
	buf.WriteString(value)
}

func writeRepeat(buf *bytes.Buffer, c byte, n int) {
	for ; n > 0; n-- {
		buf.WriteByte(c)
	}
}
