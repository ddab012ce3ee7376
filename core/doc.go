// Package core defines the shared types used across ttylog.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, the Exception type for errors attached to
// an event, and the Field type for structured key-value pairs.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and must return it with PutEntry once every handler has
// consumed it.
//
// Levels are ordered NOTSET < TRACE < DEBUG < INFO < WARN < ERROR < FATAL.
// NOTSET as a threshold lets every event through.
package core
