package filehandler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/philipp01105/ttylog/core"
)

// TimedConfig configures a time-rotating file handler. Exactly one of
// Interval and Schedule must be set.
type TimedConfig struct {
	FileConfig
	// Interval rotates once this much time has passed since the file was
	// opened or last rotated
	Interval time.Duration
	// Schedule is a cron expression or descriptor ("0 0 * * *",
	// "@midnight", "@every 1h") giving the rotation times
	Schedule string
	// Backups is how many numbered backups are kept
	Backups int
	// Clock returns the current time (default: time.Now)
	Clock func() time.Time
}

type intervalPolicy struct {
	interval time.Duration
	last     time.Time
}

func (p *intervalPolicy) shouldRotate(now time.Time, _ int64) bool {
	return now.Sub(p.last) >= p.interval
}

func (p *intervalPolicy) rotated(now time.Time) {
	p.last = now
}

type schedulePolicy struct {
	schedule cron.Schedule
	next     time.Time
}

func (p *schedulePolicy) shouldRotate(now time.Time, _ int64) bool {
	return !p.next.IsZero() && !now.Before(p.next)
}

func (p *schedulePolicy) rotated(now time.Time) {
	p.next = p.schedule.Next(now)
}

// TimedRotatingFileHandler rotates its file on elapsed time or on a cron
// schedule, keeping numbered backups like RotatingFileHandler.
type TimedRotatingFileHandler struct {
	fileBase
}

// NewTimedRotatingFileHandler opens cfg.Filename for time-based rotation.
func NewTimedRotatingFileHandler(cfg TimedConfig) (*TimedRotatingFileHandler, error) {
	policy, err := newTimePolicy(cfg)
	if err != nil {
		return nil, err
	}
	h := &TimedRotatingFileHandler{}
	if err := initFileBase(&h.fileBase, cfg.FileConfig, cfg.Backups, cfg.Clock); err != nil {
		return nil, err
	}
	policy.rotated(h.now())
	h.policy = policy
	return h, nil
}

func newTimePolicy(cfg TimedConfig) (rotationPolicy, error) {
	switch {
	case cfg.Interval > 0 && cfg.Schedule != "":
		return nil, fmt.Errorf("%w: both interval and schedule set", ErrInvalidSchedule)
	case cfg.Interval > 0:
		return &intervalPolicy{interval: cfg.Interval}, nil
	case cfg.Schedule != "":
		schedule, err := cron.ParseStandard(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, cfg.Schedule, err)
		}
		return &schedulePolicy{schedule: schedule}, nil
	}
	return nil, fmt.Errorf("%w: interval or schedule required", ErrInvalidSchedule)
}

// NextRotation returns when the next rotation is due
func (h *TimedRotatingFileHandler) NextRotation() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch p := h.policy.(type) {
	case *intervalPolicy:
		return p.last.Add(p.interval)
	case *schedulePolicy:
		return p.next
	}
	return time.Time{}
}

// Handle processes a log entry synchronously.
func (h *TimedRotatingFileHandler) Handle(entry *core.Entry) error {
	return h.write(entry)
}

// Rotate forces a rollover now. The next scheduled rotation is counted
// from this one.
func (h *TimedRotatingFileHandler) Rotate() error {
	return h.forceRotate()
}

// Close closes the handler.
func (h *TimedRotatingFileHandler) Close() error {
	return h.closeFile()
}
