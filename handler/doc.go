// Package handler provides the Handler interface shared by every sink,
// together with the fan-out MultiHandler and an adapter to log/slog.
//
// Concrete sinks live in subpackages:
//
//   - consolehandler writes to an already open stream such as stderr and
//     colours output while that stream is a terminal.
//   - filehandler writes to files, optionally rolling them over by size,
//     by elapsed time or on a cron schedule.
//
// Handlers are synchronous. Each one serializes its own writes, so a
// single handler may be shared by many goroutines. Handlers count what
// they process, drop, rotate and fail on in Stats.
package handler
