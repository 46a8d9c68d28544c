package zcl

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry is the shared cluster scope, keyed by cluster id.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	types  map[ClusterID]Type
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[ClusterID]Type),
	}
}

// NewStandardRegistry creates a registry holding the standard clusters.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	for _, t := range StandardTypes() {
		r.MustRegister(t)
	}
	return r
}

// Default is the process-wide registry of standard clusters.
var Default = NewStandardRegistry()

// SetLogger sets the logger used for registration debug output.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a cluster type.
// Returns ErrDuplicateCluster if the id is already taken.
func (r *Registry) Register(t Type) error {
	if t.New == nil {
		return fmt.Errorf("%s (%s): %w", t.Name, t.ID, ErrNoConstructor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[t.ID]; ok {
		return fmt.Errorf("%s already registered as %s: %w", t.ID, existing.Name, ErrDuplicateCluster)
	}
	r.types[t.ID] = t

	if r.logger != nil {
		r.logger.Debug("cluster registered", "id", t.ID.String(), "name", t.Name)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup returns the type registered for id.
func (r *Registry) Lookup(id ClusterID) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Has returns true if a type is registered for id.
func (r *Registry) Has(id ClusterID) bool {
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns all registered ids in ascending order.
func (r *Registry) IDs() []ClusterID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ClusterID, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// New builds the registered cluster for id bound to ep.
// Unregistered ids produce a generic cluster, the same way the discovery
// stack represents clusters it has no implementation for. A registered type
// that fails to build also produces a generic cluster; the failure is logged
// at warn level.
func (r *Registry) New(id ClusterID, ep Endpoint) Cluster {
	if t, ok := r.Lookup(id); ok {
		c, err := t.Instantiate(ep)
		if err == nil {
			return c
		}
		r.mu.RLock()
		logger := r.logger
		r.mu.RUnlock()
		if logger != nil {
			logger.Warn("cluster constructor failed", "id", id.String(), "name", t.Name, "error", err)
		}
	}
	return NewBase(id, UnknownName(id), ep)
}

// UnknownName is the name given to clusters with no registered type.
func UnknownName(id ClusterID) string {
	return "Unknown(" + id.String() + ")"
}
