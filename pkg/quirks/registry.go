package quirks

import (
	"slices"
	"sync"
)

// Definition is a quirk: a signature paired with its replacement.
type Definition struct {
	// Name identifies the quirk in logs and validation errors.
	Name string

	Signature   Signature
	Replacement Replacement
}

// Registry is an ordered collection of quirk definitions.
// It does not deduplicate; two definitions with identical signatures are both
// kept and checked in registration order.
type Registry struct {
	mu   sync.RWMutex
	defs []*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the process-wide registry used by Get when no registry
// is given.
var DefaultRegistry = NewRegistry()

// Register appends def to the default registry and returns it.
func Register(def *Definition) *Definition {
	return DefaultRegistry.Register(def)
}

// Register appends def and returns it.
func (r *Registry) Register(def *Definition) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, def)
	return def
}

// All returns the definitions in registration order.
// The returned slice is a snapshot; later registrations do not affect it.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.defs)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Contains reports whether def is registered.
func (r *Registry) Contains(def *Definition) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.defs, def)
}

// Pop removes and returns the most recently registered definition.
func (r *Registry) Pop() (*Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.defs) == 0 {
		return nil, false
	}
	last := r.defs[len(r.defs)-1]
	r.defs = r.defs[:len(r.defs)-1]
	return last, true
}

// Reset removes all definitions. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = nil
}
