package filehandler

import (
	"time"

	"github.com/philipp01105/ttylog/core"
)

// DefaultMaxBytes and DefaultBackups are the size rotation defaults used
// by the logger bootstrap.
const (
	DefaultMaxBytes = 10 * 1024 * 1024
	DefaultBackups  = 5
)

// RotatingConfig configures a size-rotating file handler
type RotatingConfig struct {
	FileConfig
	// MaxBytes triggers rotation once the active file has reached it
	// (0 = never rotate)
	MaxBytes int64
	// Backups is how many numbered backups are kept
	Backups int
}

type sizePolicy struct {
	maxBytes int64
}

func (p sizePolicy) shouldRotate(_ time.Time, size int64) bool {
	return p.maxBytes > 0 && size >= p.maxBytes
}

func (sizePolicy) rotated(time.Time) {}

// RotatingFileHandler switches to a fresh file once the active one has
// grown to MaxBytes. Backups are named <name>.1 (newest) to <name>.N.
type RotatingFileHandler struct {
	fileBase
	maxBytes int64
}

// NewRotatingFileHandler opens cfg.Filename for size-based rotation.
func NewRotatingFileHandler(cfg RotatingConfig) (*RotatingFileHandler, error) {
	h := &RotatingFileHandler{maxBytes: cfg.MaxBytes}
	if err := initFileBase(&h.fileBase, cfg.FileConfig, cfg.Backups, nil); err != nil {
		return nil, err
	}
	if cfg.MaxBytes > 0 {
		h.policy = sizePolicy{maxBytes: cfg.MaxBytes}
	}
	return h, nil
}

// MaxBytes returns the rotation threshold
func (h *RotatingFileHandler) MaxBytes() int64 {
	return h.maxBytes
}

// Handle processes a log entry synchronously.
func (h *RotatingFileHandler) Handle(entry *core.Entry) error {
	return h.write(entry)
}

// Rotate forces a rollover whatever the file size.
func (h *RotatingFileHandler) Rotate() error {
	return h.forceRotate()
}

// Close closes the handler.
func (h *RotatingFileHandler) Close() error {
	return h.closeFile()
}
