// Package consolehandler provides the stream handler, which writes
// formatted log entries to an already open stream (default: os.Stderr).
//
// Terminal detection runs on every write, so redirecting a stream between
// events switches colouring on or off. On Windows the console's virtual
// terminal mode is enabled the first time colour is written.
//
// Stderr and Stdout return shared, process-wide handlers for the standard
// streams.
package consolehandler
