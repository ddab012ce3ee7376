package filehandler

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler"
)

// ArchiveConfig configures an archive handler. Backups carry a timestamp
// in their name and may be gzip compressed.
type ArchiveConfig struct {
	FileConfig
	// MaxSizeMB is the size in megabytes at which the file is rotated
	// (default: 100)
	MaxSizeMB int
	// MaxBackups is the number of archives kept (0 = all)
	MaxBackups int
	// MaxAgeDays removes archives older than this many days (0 = never)
	MaxAgeDays int
	// Compress gzips rotated archives
	Compress bool
	// LocalTime stamps archive names in local time instead of UTC
	LocalTime bool
}

// ArchiveHandler is a size-rotating file handler whose backups are named
// by timestamp, optionally compressed and aged out.
type ArchiveHandler struct {
	mu        sync.Mutex
	out       *lumberjack.Logger
	formatter formatter.Formatter
	level     atomic.Int32
	stats     *handler.Stats
	closed    bool
}

// NewArchiveHandler creates an archive handler. The file is opened on the
// first write.
func NewArchiveHandler(cfg ArchiveConfig) (*ArchiveHandler, error) {
	if err := applyFileDefaults(&cfg.FileConfig); err != nil {
		return nil, err
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return nil, fmt.Errorf("filehandler: negative archive limits")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("filehandler: %w", err)
	}
	if cfg.Mode == ModeTruncate {
		if err := os.Truncate(cfg.Filename, 0); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("filehandler: %w", err)
		}
	}

	h := &ArchiveHandler{
		out: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	h.level.Store(int32(cfg.Level))
	return h, nil
}

// Handle processes a log entry synchronously.
func (h *ArchiveHandler) Handle(entry *core.Entry) error {
	if !entry.Level.Enabled(core.Level(h.level.Load())) {
		h.stats.IncrementDropped()
		return nil
	}
	data, err := h.formatter.Format(entry)
	if err != nil {
		h.stats.IncrementErrors()
		return fmt.Errorf("filehandler: format: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if _, err := h.out.Write(data); err != nil {
		h.stats.IncrementErrors()
		return fmt.Errorf("filehandler: write: %w", err)
	}
	h.stats.IncrementProcessed()
	return nil
}

// Rotate closes the active file, archives it and opens a new one.
func (h *ArchiveHandler) Rotate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if err := h.out.Rotate(); err != nil {
		h.stats.IncrementErrors()
		return fmt.Errorf("filehandler: rotate: %w", err)
	}
	h.stats.IncrementRotations()
	return nil
}

// Filename returns the path of the active file
func (h *ArchiveHandler) Filename() string {
	return h.out.Filename
}

// SetLevel changes the minimum level written
func (h *ArchiveHandler) SetLevel(level core.Level) {
	h.level.Store(int32(level))
}

// Stats returns a snapshot of the current statistics
func (h *ArchiveHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler.
func (h *ArchiveHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.out.Close()
}
