// Package logger is the public API of ttylog. Most users only need to
// import this package.
//
// Every program has one root Channel, returned by Root. A channel owns
// the handlers attached to it and fans each event out to all of them.
// Bootstrap (or CreateLogger, which also returns a logger) installs the
// standard set: a stream handler on stderr and, when a filename is
// given, a rotating file handler, all sharing one formatter.
//
//	log, err := logger.CreateLogger(logger.Options{
//	    Level:    logger.DebugLevel,
//	    Filename: "/var/log/app/app.log",
//	    MaxBytes: 10 << 20,
//	    Backups:  5,
//	})
//
// Calling Bootstrap again replaces the handlers of the previous call
// and closes them, so it is safe to reconfigure at any time.
//
// GetLogger returns a named Logger bound to the root channel. A Logger
// is immutable: its name, fields and level are set once via the Builder,
// With or Named, which makes it safe for concurrent use without locking.
//
//	db := logger.GetLogger("db").With(logger.String("shard", "eu-1"))
//	db.Warnf("slow query: %s", elapsed)
//	db.Exception(err, "query failed")
//
// The package-level functions Info, Error, Debugf, etc. delegate to the
// default logger, which is the root logger until SetDefault is called.
// Before Bootstrap runs, only WARN and above are printed, to stderr.
//
// Options can be read from YAML or JSON with LoadOptions, and bound to
// command line flags with Options.RegisterFlags.
//
// With Options.CaptureWarnings the standard library log package is
// redirected into the root channel as WARN entries named "stdlog".
package logger
