package logger

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler"
	"github.com/philipp01105/ttylog/handler/consolehandler"
	"github.com/philipp01105/ttylog/handler/filehandler"
)

// factoryMu serializes Bootstrap and Shutdown
var factoryMu sync.Mutex

// Bootstrap installs the handlers described by opts on the root channel.
//
// It is idempotent: the handlers attached by any earlier call are
// detached and closed, so repeated calls never accumulate handlers or
// leak file descriptors. A handler passed again in opts.Handlers stays
// attached and open. When a handler cannot be built, the handlers
// built so far are closed and the previous configuration stays in place.
func Bootstrap(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	factoryMu.Lock()
	defer factoryMu.Unlock()

	handlers, err := buildHandlers(opts)
	if err != nil {
		return err
	}

	root := Root()
	root.SetLevel(opts.Level)
	var errs []error
	for _, h := range root.Replace(handlers...) {
		if slices.ContainsFunc(handlers, func(x handler.Handler) bool { return sameHandler(x, h) }) {
			// still attached
			continue
		}
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		root.reportError(fmt.Errorf("close previous handlers: %w", err))
	}

	captureStdlog(opts.CaptureWarnings)
	return nil
}

// CreateLogger runs Bootstrap and returns the logger named opts.Name.
func CreateLogger(opts Options) (*Logger, error) {
	if err := Bootstrap(opts); err != nil {
		return nil, err
	}
	return GetLogger(opts.Name), nil
}

// Shutdown releases stdlib capture and closes every root handler.
func Shutdown() error {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	captureStdlog(false)
	return Root().Reset()
}

// buildHandlers returns opts.Handlers, or the default stream handler plus
// a file handler when a filename is set.
func buildHandlers(opts Options) ([]handler.Handler, error) {
	if len(opts.Handlers) > 0 {
		return opts.Handlers, nil
	}

	f := formatter.NewTextFormatter(formatter.Config{
		Format:          opts.Format,
		TimestampFormat: opts.DateFormat,
		PathLimit:       opts.PathLimit,
		DisableColor:    opts.DisableColor,
	})
	if err := f.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	stream := opts.Stream
	if stream == nil {
		stream = os.Stderr
	}
	handlers := []handler.Handler{
		consolehandler.NewStreamHandler(consolehandler.ConsoleConfig{
			Writer:    stream,
			Formatter: f,
			Level:     opts.Level,
		}),
	}

	if opts.Filename == "" {
		return handlers, nil
	}

	fc := filehandler.FileConfig{
		Filename:  opts.Filename,
		Mode:      opts.FileMode,
		Formatter: f,
		Level:     opts.Level,
	}
	var (
		fh  handler.Handler
		err error
	)
	if opts.RotateEvery > 0 || opts.RotateAt != "" {
		fh, err = filehandler.NewTimedRotatingFileHandler(filehandler.TimedConfig{
			FileConfig: fc,
			Interval:   opts.RotateEvery,
			Schedule:   opts.RotateAt,
			Backups:    opts.Backups,
		})
	} else {
		fh, err = filehandler.NewRotatingFileHandler(filehandler.RotatingConfig{
			FileConfig: fc,
			MaxBytes:   opts.MaxBytes,
			Backups:    opts.Backups,
		})
	}
	if err != nil {
		closeAll(handlers)
		return nil, err
	}
	return append(handlers, fh), nil
}

func closeAll(handlers []handler.Handler) {
	for _, h := range handlers {
		_ = h.Close()
	}
}
