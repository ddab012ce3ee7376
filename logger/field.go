package logger

import (
	"time"

	"github.com/philipp01105/ttylog/core"
)

// Keyword fields are rendered after the message as key=value, in the
// order they were attached.

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint64 creates a uint64 field. The bits are stored in Int64.
func Uint64(key string, val uint64) core.Field {
	return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
}

func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time creates a time field rendered with core.FieldTimeLayout
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an "error" field. Use Exception to render the error in
// place of the message instead.
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr creates an error field under key. A nil error renders as an
// empty quoted value.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any creates a field rendered with fmt.Sprint
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
