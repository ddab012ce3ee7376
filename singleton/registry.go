package singleton

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNilConstructor is returned when GetOrCreate is called without a
// constructor for a key that has no instance yet.
var ErrNilConstructor = errors.New("singleton: nil constructor")

// Registry holds at most one instance per key.
// The mutex only guards the check-and-create step; callers use the
// returned instance without holding any registry lock.
type Registry struct {
	mu        sync.Mutex
	instances map[any]any
}

// New creates an empty registry
func New() *Registry {
	return &Registry{instances: make(map[any]any)}
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// GetOrCreate returns the instance stored under key, running ctor to build
// it on first use. Concurrent callers for the same key block until the
// first constructor finishes and then receive the same instance.
// A failing constructor caches nothing, so a later call retries.
func (r *Registry) GetOrCreate(key any, ctor func() (any, error)) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst, ok := r.instances[key]; ok {
		return inst, nil
	}
	if ctor == nil {
		return nil, ErrNilConstructor
	}
	inst, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("singleton: construct %v: %w", key, err)
	}
	r.instances[key] = inst
	return inst, nil
}

// Lookup returns the instance stored under key without creating one.
func (r *Registry) Lookup(key any) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[key]
	return inst, ok
}

// Forget drops the instance stored under key. The instance itself is not
// closed; that remains the caller's job.
func (r *Registry) Forget(key any) {
	r.mu.Lock()
	delete(r.instances, key)
	r.mu.Unlock()
}

// Len reports the number of live instances
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// typeKey identifies an instance by its static type.
type typeKey[T any] struct{}

// Of returns the single instance of T held by r, building it with ctor on
// first use. The key is the type T itself.
func Of[T any](r *Registry, ctor func() (T, error)) (T, error) {
	return Keyed[T](r, typeKey[T]{}, ctor)
}

// Keyed is Of with an explicit key, for several instances of one type.
func Keyed[T any](r *Registry, key any, ctor func() (T, error)) (T, error) {
	var wrapped func() (any, error)
	if ctor != nil {
		wrapped = func() (any, error) { return ctor() }
	}
	inst, err := r.GetOrCreate(key, wrapped)
	if err != nil {
		var zero T
		return zero, err
	}
	return inst.(T), nil
}
