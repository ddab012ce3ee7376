package logger

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/handler"
	"github.com/philipp01105/ttylog/handler/consolehandler"
	"github.com/philipp01105/ttylog/singleton"
)

// Channel is a named routing point that owns the handlers attached to it.
//
// Emission never takes the channel lock: Handle reads an immutable
// snapshot of the handler list, so concurrent events are serialized only
// by the handlers themselves.
type Channel struct {
	name string

	mu       sync.Mutex // guards handlers
	handlers []handler.Handler
	snapshot atomic.Pointer[handler.MultiHandler]

	level      atomic.Int32
	onError    atomic.Pointer[func(error)]
	lastResort atomic.Pointer[handlerBox]
}

type handlerBox struct{ h handler.Handler }

// NewChannel creates an empty channel that passes every level.
func NewChannel(name string) *Channel {
	c := &Channel{name: name}
	c.snapshot.Store(handler.NewMultiHandler())
	return c
}

// Name returns the channel name
func (c *Channel) Name() string {
	return c.name
}

// Attach adds h unless it is already attached. It reports whether h was added.
func (c *Channel) Attach(h handler.Handler) bool {
	if h == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.ContainsFunc(c.handlers, func(x handler.Handler) bool { return sameHandler(x, h) }) {
		return false
	}
	c.handlers = append(c.handlers, h)
	c.publish()
	return true
}

// Detach removes h without closing it. It reports whether h was attached.
func (c *Channel) Detach(h handler.Handler) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.handlers, func(x handler.Handler) bool { return sameHandler(x, h) })
	if i < 0 {
		return false
	}
	c.handlers = slices.Delete(c.handlers, i, i+1)
	c.publish()
	return true
}

// Handlers returns a copy of the attached handlers
func (c *Channel) Handlers() []handler.Handler {
	return c.snapshot.Load().Handlers()
}

// Replace swaps the attached handlers for hs in one step and returns the
// handlers that were attached before. The old handlers are not closed.
func (c *Channel) Replace(hs ...handler.Handler) []handler.Handler {
	next := make([]handler.Handler, 0, len(hs))
	for _, h := range hs {
		if h == nil || slices.ContainsFunc(next, func(x handler.Handler) bool { return sameHandler(x, h) }) {
			continue
		}
		next = append(next, h)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.handlers
	c.handlers = next
	c.publish()
	return old
}

// Reset detaches and closes every handler. Close failures are joined.
func (c *Channel) Reset() error {
	var errs []error
	for _, h := range c.Replace() {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// publish must be called with mu held
func (c *Channel) publish() {
	c.snapshot.Store(handler.NewMultiHandler(c.handlers...))
}

// SetLevel sets the minimum level routed by the channel
func (c *Channel) SetLevel(level core.Level) {
	c.level.Store(int32(level))
}

// Level returns the minimum level routed by the channel
func (c *Channel) Level() core.Level {
	return core.Level(c.level.Load())
}

// Enabled reports whether an event at level would be routed
func (c *Channel) Enabled(level core.Level) bool {
	return level.Enabled(c.Level())
}

// SetErrorHandler installs fn to receive handler failures.
// A nil fn restores the default, which prints to stderr.
func (c *Channel) SetErrorHandler(fn func(error)) {
	if fn == nil {
		c.onError.Store(nil)
		return
	}
	c.onError.Store(&fn)
}

// SetLastResort sets the handler used for WARN and above while no
// handler is attached. Nil disables it.
func (c *Channel) SetLastResort(h handler.Handler) {
	if h == nil {
		c.lastResort.Store(nil)
		return
	}
	c.lastResort.Store(&handlerBox{h: h})
}

// Handle routes entry to every attached handler. Failures are passed to
// the error handler and returned.
func (c *Channel) Handle(entry *core.Entry) error {
	if !c.Enabled(entry.Level) {
		return nil
	}

	var err error
	if mh := c.snapshot.Load(); mh.Len() > 0 {
		err = mh.Handle(entry)
	} else if entry.Level >= core.WarnLevel {
		if box := c.lastResort.Load(); box != nil {
			err = box.h.Handle(entry)
		}
	}
	if err != nil {
		c.reportError(err)
	}
	return err
}

// Stats sums the statistics of the attached handlers
func (c *Channel) Stats() handler.Snapshot {
	return c.snapshot.Load().Stats()
}

// Rotate forces a rollover on every attached handler that supports one.
func (c *Channel) Rotate() error {
	var errs []error
	for _, h := range c.snapshot.Load().Handlers() {
		if r, ok := h.(handler.Rotator); ok {
			if err := r.Rotate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close is Reset
func (c *Channel) Close() error {
	return c.Reset()
}

func (c *Channel) reportError(err error) {
	if fn := c.onError.Load(); fn != nil {
		(*fn)(err)
		return
	}
	fmt.Fprintf(os.Stderr, "ttylog: %s: %v\n", c.name, err)
}

// sameHandler compares handlers by identity. Handlers of a
// non-comparable dynamic type never match.
func sameHandler(a, b handler.Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

var rootKey = struct{ name string }{"logger.root"}

// Root returns the process-wide root channel. It falls back to
// consolehandler.Stderr for WARN and above until a handler is attached.
func Root() *Channel {
	c, _ := singleton.Keyed(singleton.Default(), rootKey, func() (*Channel, error) {
		c := NewChannel("root")
		c.SetLastResort(consolehandler.Stderr())
		return c, nil
	})
	return c
}

// GetLogger returns a logger named name that emits through the root
// channel with caller capture enabled. An empty name is the root logger.
func GetLogger(name string) *Logger {
	return NewBuilder().
		WithChannel(Root()).
		WithName(name).
		WithCaller(true).
		Build()
}
