package consolehandler

import (
	"os"

	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/singleton"
)

type stdKey string

// Stderr returns the process-wide handler writing to os.Stderr with the
// default formatter.
func Stderr() *StreamHandler {
	return std("stderr")
}

// Stdout returns the process-wide handler writing to os.Stdout with the
// default formatter.
func Stdout() *StreamHandler {
	return std("stdout")
}

func std(name stdKey) *StreamHandler {
	h, _ := singleton.Keyed(singleton.Default(), name, func() (*StreamHandler, error) {
		w := os.Stderr
		if name == "stdout" {
			w = os.Stdout
		}
		return NewStreamHandler(ConsoleConfig{Writer: w, Formatter: formatter.Default()}), nil
	})
	return h
}
