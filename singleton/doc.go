// Package singleton provides a keyed registry guaranteeing at most one
// live instance per key, safe under concurrent construction.
//
// Instances are built lazily by a constructor supplied at the call site
// and live for the lifetime of the registry:
//
//	h, err := singleton.Of(singleton.Default(), func() (*Pool, error) {
//		return NewPool(8)
//	})
//
// A constructor error is returned to the caller and nothing is cached.
package singleton
