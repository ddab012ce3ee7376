// Package compat adapts third-party logging APIs onto ttylog handlers.
//
// NewZapLogger returns a *zap.Logger whose entries are rendered by a
// ttylog handler, typically the root channel:
//
//	zl := compat.NewZapLogger(logger.Root(), logger.InfoLevel)
//	zl.Named("http").Info("listening", zap.Int("port", 8080))
package compat
