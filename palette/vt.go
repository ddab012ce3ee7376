package palette

import (
	"os"
	"sync"
)

var vtOnce sync.Map // fd -> *vtResult

type vtResult struct {
	once sync.Once
	err  error
}

// EnableVirtualTerminal turns on ANSI escape processing for f once per
// file descriptor. On platforms whose terminals interpret escapes natively
// it does nothing.
func EnableVirtualTerminal(f *os.File) error {
	if f == nil {
		return nil
	}
	v, _ := vtOnce.LoadOrStore(f.Fd(), &vtResult{})
	r := v.(*vtResult)
	r.once.Do(func() {
		r.err = enableVirtualTerminal(f.Fd())
	})
	return r.err
}
