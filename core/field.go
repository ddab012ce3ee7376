package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// FieldType selects which member of Field holds the value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Uint64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// FieldTimeLayout is the layout used for TimeType values.
const FieldTimeLayout = time.RFC3339

// Field is a keyword value attached to an event. It is rendered after the
// message as key=value.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     any
}

// StringValue returns the value as text, without quoting
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Uint64Type:
		return strconv.FormatUint(uint64(f.Int64), 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(FieldTimeLayout)
	case DurationType:
		return time.Duration(f.Int64).String()
	case AnyType:
		return fmt.Sprint(f.Any)
	default:
		return ""
	}
}

// AppendText appends key=value to dst. Values that are empty or contain
// spaces, quotes, '=' or control characters are Go-quoted so the line
// stays splittable on spaces.
func (f Field) AppendText(dst []byte) []byte {
	dst = append(dst, f.Key...)
	dst = append(dst, '=')
	v := f.StringValue()
	if needsQuoting(v) {
		return strconv.AppendQuote(dst, v)
	}
	return append(dst, v...)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '=' || r == '"' || unicode.IsControl(r) || r == unicode.ReplacementChar
	}) >= 0
}
