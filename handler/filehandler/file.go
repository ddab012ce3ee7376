package filehandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler"
)

var (
	// ErrEmptyFilename is returned when a file handler is built without a path
	ErrEmptyFilename = errors.New("filehandler: filename is required")
	// ErrClosed is returned by Handle and Rotate after Close
	ErrClosed = errors.New("filehandler: handler closed")
	// ErrInvalidSchedule is returned for a bad interval or cron expression
	ErrInvalidSchedule = errors.New("filehandler: invalid rotation schedule")
	// ErrUnknownMode is returned by ParseMode
	ErrUnknownMode = errors.New("filehandler: unknown file mode")
)

// Mode selects how an existing file is opened.
type Mode int

const (
	// ModeAppend keeps existing content (default)
	ModeAppend Mode = iota
	// ModeTruncate empties the file on open
	ModeTruncate
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	case ModeTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "append"/"a" and "truncate"/"w".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a", "append":
		return ModeAppend, nil
	case "w", "truncate":
		return ModeTruncate, nil
	}
	return ModeAppend, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseMode.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FileConfig holds configuration shared by every file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Mode controls whether an existing file is appended to or truncated
	Mode Mode
	// Formatter to use (default: formatter.Default())
	Formatter formatter.Formatter
	// Level is the minimum level written (default: NotSetLevel, everything)
	Level core.Level
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) error {
	if cfg.Filename == "" {
		return ErrEmptyFilename
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.Default()
	}
	return nil
}

// rotationPolicy decides when the active file is rolled over.
type rotationPolicy interface {
	shouldRotate(now time.Time, size int64) bool
	rotated(now time.Time)
}

// fileBase contains shared fields and methods for file handlers.
// mu covers the rotation check and the write that follows it.
type fileBase struct {
	filename    string
	file        *os.File
	formatter   formatter.Formatter
	mu          sync.Mutex
	level       atomic.Int32
	backups     int
	currentSize int64
	policy      rotationPolicy
	now         func() time.Time
	stats       *handler.Stats
	closed      bool
}

// initFileBase opens the file and initializes b in place.
func initFileBase(b *fileBase, cfg FileConfig, backups int, now func() time.Time) error {
	if err := applyFileDefaults(&cfg); err != nil {
		return err
	}
	if now == nil {
		now = time.Now
	}
	b.filename = cfg.Filename
	b.formatter = cfg.Formatter
	b.backups = max(backups, 0)
	b.now = now
	b.stats = handler.NewStats()
	b.level.Store(int32(cfg.Level))

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return fmt.Errorf("filehandler: %w", err)
	}
	return b.open(cfg.Mode == ModeTruncate)
}

// open opens the active file and records its size
func (b *fileBase) open(truncate bool) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(b.filename, flags, 0644)
	if err != nil {
		return fmt.Errorf("filehandler: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("filehandler: %w", err)
	}
	b.file = file
	b.currentSize = info.Size()
	return nil
}

// write formats and writes an entry, rotating first when the policy says so
func (b *fileBase) write(entry *core.Entry) error {
	if !entry.Level.Enabled(core.Level(b.level.Load())) {
		b.stats.IncrementDropped()
		return nil
	}

	data, err := b.formatter.Format(entry)
	if err != nil {
		b.stats.IncrementErrors()
		return fmt.Errorf("filehandler: format: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.policy != nil && b.policy.shouldRotate(b.now(), b.currentSize) {
		if err := b.rotate(); err != nil {
			b.stats.IncrementErrors()
			return err
		}
	}
	if b.file == nil {
		// a failed rotation left no active file
		if err := b.open(false); err != nil {
			b.stats.IncrementErrors()
			return err
		}
	}

	n, err := b.file.Write(data)
	b.currentSize += int64(n)
	if err != nil {
		b.stats.IncrementErrors()
		return fmt.Errorf("filehandler: write: %w", err)
	}
	b.stats.IncrementProcessed()
	return nil
}

// backupName returns the name of backup i
func (b *fileBase) backupName(i int) string {
	return fmt.Sprintf("%s.%d", b.filename, i)
}

// rotate performs the actual file rotation: close the active file, shift
// name.i to name.i+1 dropping the oldest, move the active file to name.1
// and open a fresh one. Without backups the file is truncated in place.
// Must be called with mu held.
func (b *fileBase) rotate() error {
	if b.file != nil {
		err := b.file.Close()
		b.file = nil
		if err != nil {
			return fmt.Errorf("filehandler: rotate %s: %w", b.filename, err)
		}
	}

	if b.backups > 0 {
		if err := b.shiftBackups(); err != nil {
			// keep logging into the current file
			if openErr := b.open(false); openErr != nil {
				return fmt.Errorf("filehandler: rotate %s: %w", b.filename, errors.Join(err, openErr))
			}
			return fmt.Errorf("filehandler: rotate %s: %w", b.filename, err)
		}
	}

	if err := b.open(true); err != nil {
		return err
	}
	if b.policy != nil {
		b.policy.rotated(b.now())
	}
	b.stats.IncrementRotations()
	return nil
}

func (b *fileBase) shiftBackups() error {
	if err := os.Remove(b.backupName(b.backups)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for i := b.backups - 1; i >= 1; i-- {
		src := b.backupName(i)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := os.Rename(src, b.backupName(i+1)); err != nil {
			return err
		}
	}
	if err := os.Rename(b.filename, b.backupName(1)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// forceRotate rolls the file over regardless of the rotation policy.
// Only the rotating handlers expose it.
func (b *fileBase) forceRotate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := b.rotate(); err != nil {
		b.stats.IncrementErrors()
		return err
	}
	return nil
}

// Filename returns the path of the active file
func (b *fileBase) Filename() string {
	return b.filename
}

// Size returns the number of bytes in the active file
func (b *fileBase) Size() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentSize
}

// SetLevel changes the minimum level written
func (b *fileBase) SetLevel(level core.Level) {
	b.level.Store(int32(level))
}

// Level returns the minimum level written
func (b *fileBase) Level() core.Level {
	return core.Level(b.level.Load())
}

// Stats returns a snapshot of the current statistics
func (b *fileBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// closeFile syncs and closes the underlying file. Closing twice is a no-op.
func (b *fileBase) closeFile() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if b.file == nil {
		return nil
	}
	f := b.file
	b.file = nil
	syncErr := f.Sync()
	return errors.Join(syncErr, f.Close())
}

var (
	_ handler.Rotator = (*RotatingFileHandler)(nil)
	_ handler.Rotator = (*TimedRotatingFileHandler)(nil)
	_ handler.Rotator = (*ArchiveHandler)(nil)
)

// FileHandler writes entries to a single file without rotation.
type FileHandler struct {
	fileBase
}

// NewFileHandler opens cfg.Filename, creating parent directories as needed.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	h := &FileHandler{}
	if err := initFileBase(&h.fileBase, cfg, 0, nil); err != nil {
		return nil, err
	}
	return h, nil
}

// Handle processes a log entry synchronously.
func (h *FileHandler) Handle(entry *core.Entry) error {
	return h.write(entry)
}

// Close closes the handler.
func (h *FileHandler) Close() error {
	return h.closeFile()
}
