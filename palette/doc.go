// Package palette is the static colour table used for terminal output.
//
// Names follow the xterm 256-colour naming scheme in lower snake case
// (green_3, orange_red_1, grey_50). Lookup returns the foreground escape
// sequence; Reset clears styling again.
package palette
