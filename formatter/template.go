package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadTemplate is returned when a message template is malformed or
// names an attribute the formatter does not know.
var ErrBadTemplate = errors.New("formatter: bad template")

// Attribute names usable inside a template placeholder.
const (
	AttrTime     = "time"
	AttrMsecs    = "msecs"
	AttrLevel    = "level"
	AttrPID      = "pid"
	AttrThread   = "thread"
	AttrCaller   = "caller"
	AttrLine     = "line"
	AttrMessage  = "message"
	AttrName     = "name"
	AttrFile     = "file"
	AttrFunction = "function"
)

var knownAttrs = map[string]bool{
	AttrTime: true, AttrMsecs: true, AttrLevel: true, AttrPID: true,
	AttrThread: true, AttrCaller: true, AttrLine: true, AttrMessage: true,
	AttrName: true, AttrFile: true, AttrFunction: true,
}

// segment is either literal text or one placeholder.
type segment struct {
	literal string
	attr    string
	width   int  // minimum width, 0 = none
	left    bool // left-align instead of right
	zero    bool // zero-pad numbers
}

// parseTemplate splits a template such as "{time} {level:8} - {message}"
// into segments. "{{" and "}}" stand for literal braces.
func parseTemplate(tmpl string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated placeholder at offset %d", ErrBadTemplate, i)
			}
			seg, err := parsePlaceholder(tmpl[i+1 : i+1+end])
			if err != nil {
				return nil, err
			}
			flush()
			segs = append(segs, seg)
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: unmatched '}' at offset %d", ErrBadTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return segs, nil
}

func parsePlaceholder(body string) (segment, error) {
	name, ws, hasWidth := strings.Cut(body, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return segment{}, fmt.Errorf("%w: empty placeholder", ErrBadTemplate)
	}
	if !knownAttrs[name] {
		return segment{}, fmt.Errorf("%w: unknown attribute %q", ErrBadTemplate, name)
	}
	seg := segment{attr: name}
	if !hasWidth {
		return seg, nil
	}

	if strings.HasPrefix(ws, "-") {
		seg.left = true
		ws = ws[1:]
	}
	if len(ws) > 1 && ws[0] == '0' {
		seg.zero = true
	}
	width, err := strconv.Atoi(ws)
	if err != nil || width < 0 {
		return segment{}, fmt.Errorf("%w: bad width %q for %s", ErrBadTemplate, ws, name)
	}
	seg.width = width
	return seg, nil
}

// widthOf returns the declared width of the first placeholder for attr.
func widthOf(segs []segment, attr string) int {
	for _, s := range segs {
		if s.attr == attr {
			return s.width
		}
	}
	return 0
}
