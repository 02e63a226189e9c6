// Package registry provides factory registries that components fill from
// init() functions, so a host can discover and instantiate them without
// hardcoded dependencies.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknown is returned by Create for an id that was never registered.
var ErrUnknown = errors.New("registry: unknown id")

// Factory creates a new instance of a registered component.
type Factory[V any] func() V

// Registry maps ids to factories.
type Registry[K cmp.Ordered, V any] struct {
	kind      string // Used in messages, e.g. "scene"
	mu        sync.RWMutex
	factories map[K]Factory[V]
}

// New creates an empty registry. kind names what it holds.
func New[K cmp.Ordered, V any](kind string) *Registry[K, V] {
	return &Registry[K, V]{
		kind:      kind,
		factories: make(map[K]Factory[V]),
	}
}

// Register adds a factory to the registry.
// Typically called from an init() function.
// Panics if the id is already registered.
func (r *Registry[K, V]) Register(id K, f Factory[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %v already registered", r.kind, id))
	}
	r.factories[id] = f
}

// IDs returns all registered ids in ascending order.
func (r *Registry[K, V]) IDs() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]K, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Create instantiates a new component by its id.
func (r *Registry[K, V]) Create(id K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[id]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s %v", ErrUnknown, r.kind, id)
	}
	return f(), nil
}

// Exists checks if an id is registered.
func (r *Registry[K, V]) Exists(id K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}
