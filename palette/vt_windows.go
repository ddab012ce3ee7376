//go:build windows

package palette

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func enableVirtualTerminal(fd uintptr) error {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		// not a console, e.g. redirected to a file
		return nil
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return nil
	}
	if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("palette: enable virtual terminal: %w", err)
	}
	return nil
}
