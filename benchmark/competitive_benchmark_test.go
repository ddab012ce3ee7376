package benchmark

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/ttylog/compat"
	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler/consolehandler"
	"github.com/philipp01105/ttylog/logger"
)

// Every framework renders a human-readable line with time, level, caller
// and message to io.Discard.

func newTTYLogger() *logger.Logger {
	h := consolehandler.NewStreamHandler(consolehandler.ConsoleConfig{
		Writer:    io.Discard,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(core.DebugLevel).
		WithCaller(true).
		Build()
}

func newZapLogger() *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	c := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(c, zap.AddCaller())
}

func newZapOverTTYLogger() *zap.Logger {
	h := consolehandler.NewStreamHandler(consolehandler.ConsoleConfig{Writer: io.Discard})
	return compat.NewZapLogger(h, core.DebugLevel)
}

func newSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
}

func newLogrusLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	l.SetLevel(logrus.DebugLevel)
	l.SetReportCaller(true)
	return l
}

func newZerologLogger() zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: io.Discard, NoColor: true, TimeFormat: time.Stamp}
	return zerolog.New(w).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}

func BenchmarkCompetitive_InfoNoFields(b *testing.B) {
	b.Run("ttylog", func(b *testing.B) {
		l := newTTYLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap-over-ttylog", func(b *testing.B) {
		l := newZapOverTTYLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("info message")
		}
	})
}

func BenchmarkCompetitive_InfoThreeFields(b *testing.B) {
	b.Run("ttylog", func(b *testing.B) {
		l := newTTYLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request",
				logger.String("method", "GET"),
				logger.Int("status", 200),
				logger.Duration("took", 3*time.Millisecond),
			)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request",
				zap.String("method", "GET"),
				zap.Int("status", 200),
				zap.Duration("took", 3*time.Millisecond),
			)
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request",
				slog.String("method", "GET"),
				slog.Int("status", 200),
				slog.Duration("took", 3*time.Millisecond),
			)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.WithFields(logrus.Fields{
				"method": "GET",
				"status": 200,
				"took":   3 * time.Millisecond,
			}).Info("request")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().
				Str("method", "GET").
				Int("status", 200).
				Dur("took", 3*time.Millisecond).
				Msg("request")
		}
	})
}

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("ttylog", func(b *testing.B) {
		l := newTTYLogger()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message", logger.Int("n", 1))
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message", zap.Int("n", 1))
			}
		})
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.WithField("n", 1).Info("parallel message")
			}
		})
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info().Int("n", 1).Msg("parallel message")
			}
		})
	})
}

func BenchmarkCompetitive_Disabled(b *testing.B) {
	b.Run("ttylog", func(b *testing.B) {
		l := newTTYLogger()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Trace("filtered")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger().WithOptions(zap.IncreaseLevel(zap.InfoLevel))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger().Level(zerolog.InfoLevel)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug().Msg("filtered")
		}
	})
}
