package handler

import (
	"github.com/philipp01105/ttylog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry must not be retained after
	// Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that count their traffic.
type StatsProvider interface {
	Stats() Snapshot
}

// Rotator is implemented by handlers whose destination can be rolled over
// on demand.
type Rotator interface {
	Rotate() error
}
