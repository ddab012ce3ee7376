package benchmark

import (
	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/handler"
)

// countingHandler does no formatting or I/O, so benchmarks using it
// measure the logger and channel alone. The logger recycles the entry
// after Handle returns.
type countingHandler struct {
	stats *handler.Stats
}

func newCountingHandler() *countingHandler {
	return &countingHandler{stats: handler.NewStats()}
}

func (h *countingHandler) Handle(*core.Entry) error {
	h.stats.IncrementProcessed()
	return nil
}

func (h *countingHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

func (h *countingHandler) Close() error {
	return nil
}
