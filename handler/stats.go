package handler

import (
	"sync/atomic"
)

// Stats tracks handler statistics
type Stats struct {
	// ProcessedTotal counts entries written
	ProcessedTotal uint64
	// DroppedTotal counts entries below the handler level
	DroppedTotal uint64
	// RotationsTotal counts completed rollovers
	RotationsTotal uint64
	// ErrorsTotal counts failed formats and writes
	ErrorsTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementDropped atomically increments the dropped counter
func (s *Stats) IncrementDropped() {
	atomic.AddUint64(&s.DroppedTotal, 1)
}

// IncrementRotations atomically increments the rotation counter
func (s *Stats) IncrementRotations() {
	atomic.AddUint64(&s.RotationsTotal, 1)
}

// IncrementErrors atomically increments the error counter
func (s *Stats) IncrementErrors() {
	atomic.AddUint64(&s.ErrorsTotal, 1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ProcessedTotal, 0)
	atomic.StoreUint64(&s.DroppedTotal, 0)
	atomic.StoreUint64(&s.RotationsTotal, 0)
	atomic.StoreUint64(&s.ErrorsTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed uint64
	Dropped   uint64
	Rotations uint64
	Errors    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Processed: atomic.LoadUint64(&s.ProcessedTotal),
		Dropped:   atomic.LoadUint64(&s.DroppedTotal),
		Rotations: atomic.LoadUint64(&s.RotationsTotal),
		Errors:    atomic.LoadUint64(&s.ErrorsTotal),
	}
}

// Add returns the element-wise sum of two snapshots
func (s Snapshot) Add(o Snapshot) Snapshot {
	return Snapshot{
		Processed: s.Processed + o.Processed,
		Dropped:   s.Dropped + o.Dropped,
		Rotations: s.Rotations + o.Rotations,
		Errors:    s.Errors + o.Errors,
	}
}
