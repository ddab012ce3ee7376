package handler

import (
	"errors"
	"slices"

	"github.com/philipp01105/ttylog/core"
)

// MultiHandler sends log entries to multiple handlers.
// The handler list is fixed at construction.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: slices.Clone(handlers)}
}

// Handle processes a log entry by sending it to all handlers.
// A failing handler does not stop the others; all failures are joined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var errs []error
	for _, handler := range h.handlers {
		if err := handler.Handle(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handlers returns a copy of the child handlers
func (h *MultiHandler) Handlers() []Handler {
	return slices.Clone(h.handlers)
}

// Len returns the number of child handlers
func (h *MultiHandler) Len() int {
	return len(h.handlers)
}

// Stats sums the snapshots of every child that reports statistics
func (h *MultiHandler) Stats() Snapshot {
	var total Snapshot
	for _, handler := range h.handlers {
		if sp, ok := handler.(StatsProvider); ok {
			total = total.Add(sp.Stats())
		}
	}
	return total
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var errs []error
	for _, handler := range h.handlers {
		if err := handler.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
