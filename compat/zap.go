package compat

import (
	"slices"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/handler"
	"github.com/philipp01105/ttylog/logger"
)

// ZapCore is a zapcore.Core that renders zap entries through a ttylog
// handler, so code written against zap shares the ttylog output.
type ZapCore struct {
	handler handler.Handler
	level   core.Level
	fields  []core.Field
}

// NewZapCore creates a core writing entries at or above level to h.
// Pass logger.Root() to route zap through the root channel.
func NewZapCore(h handler.Handler, level core.Level) *ZapCore {
	return &ZapCore{handler: h, level: level}
}

// NewZapLogger wraps NewZapCore in a *zap.Logger that records callers.
func NewZapLogger(h handler.Handler, level core.Level, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(h, level), append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// Enabled implements zapcore.LevelEnabler
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return ZapLevelToCore(level).Enabled(c.level)
}

// With returns a copy of the core carrying fields
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = appendZapFields(slices.Clip(c.fields), fields)
	return &clone
}

// Check adds the core to ce when the entry's level is enabled
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the zap entry and hands it to the handler
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = ent.Time
	entry.Level = ZapLevelToCore(ent.Level)
	entry.Logger = ent.LoggerName
	entry.Message = ent.Message
	entry.Thread = core.GoroutineName()
	if ent.Caller.Defined {
		entry.Caller = core.CallerInfo{
			File:     ent.Caller.File,
			Line:     ent.Caller.Line,
			Function: ent.Caller.Function,
			Defined:  true,
		}
	}
	entry.Fields = append(entry.Fields, c.fields...)
	entry.Fields = appendZapFields(entry.Fields, fields)
	return c.handler.Handle(entry)
}

// Sync is a no-op; ttylog handlers write synchronously
func (c *ZapCore) Sync() error {
	return nil
}

// ZapLevelToCore maps zap levels onto ttylog levels. DPanic, Panic and
// Fatal all become FATAL.
func ZapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level < zapcore.DebugLevel:
		return core.TraceLevel
	case level == zapcore.DebugLevel:
		return core.DebugLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	case level == zapcore.WarnLevel:
		return core.WarnLevel
	case level == zapcore.ErrorLevel:
		return core.ErrorLevel
	default:
		return core.FatalLevel
	}
}

// appendZapFields encodes each zap field and appends the results in
// order. A field that expands to several keys is appended sorted by key.
func appendZapFields(dst []core.Field, fields []zapcore.Field) []core.Field {
	for _, f := range fields {
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			dst = append(dst, toField(k, enc.Fields[k]))
		}
	}
	return dst
}

func toField(key string, v any) core.Field {
	switch x := v.(type) {
	case string:
		return logger.String(key, x)
	case int:
		return logger.Int(key, x)
	case int64:
		return logger.Int64(key, x)
	case int32:
		return logger.Int64(key, int64(x))
	case uint64:
		return logger.Uint64(key, x)
	case float64:
		return logger.Float64(key, x)
	case bool:
		return logger.Bool(key, x)
	case time.Duration:
		return logger.Duration(key, x)
	case time.Time:
		return logger.Time(key, x)
	case error:
		return logger.NamedErr(key, x)
	default:
		return logger.Any(key, x)
	}
}
