package consolehandler

import (
	"io"

	"golang.org/x/term"
)

// terminal is implemented by writers that know whether they are a terminal.
type terminal interface {
	IsTerminal() bool
}

// fder is implemented by writers backed by a file descriptor, like *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal. Writers that
// cannot answer, or fail while answering, are treated as non-terminals.
func IsTerminal(w io.Writer) (tty bool) {
	defer func() {
		if recover() != nil {
			tty = false
		}
	}()

	switch v := w.(type) {
	case terminal:
		return v.IsTerminal()
	case fder:
		return term.IsTerminal(int(v.Fd()))
	}
	return false
}
