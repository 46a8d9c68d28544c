package quirkfile

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Catalog errors.
var (
	ErrDuplicateName = errors.New("quirkfile: duplicate catalog name")
	ErrInvalidEntry  = errors.New("quirkfile: invalid catalog entry")
)

// Catalog names the quirk-local cluster types and custom endpoint
// constructors that quirk files can refer to.
type Catalog struct {
	mu        sync.RWMutex
	clusters  map[string]zcl.Type
	endpoints map[string]quirks.EndpointConstructor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		clusters:  make(map[string]zcl.Type),
		endpoints: make(map[string]quirks.EndpointConstructor),
	}
}

// RegisterCluster makes t available as {type: t.Name}.
func (c *Catalog) RegisterCluster(t zcl.Type) error {
	if t.Name == "" || t.New == nil {
		return fmt.Errorf("%w: cluster type %s needs a name and constructor", ErrInvalidEntry, t.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.clusters[t.Name]; exists {
		return fmt.Errorf("%w: cluster type %q", ErrDuplicateName, t.Name)
	}
	c.clusters[t.Name] = t
	return nil
}

// RegisterEndpoint makes fn available as {custom: name}.
func (c *Catalog) RegisterEndpoint(name string, fn quirks.EndpointConstructor) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: endpoint constructor %q", ErrInvalidEntry, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.endpoints[name]; exists {
		return fmt.Errorf("%w: endpoint constructor %q", ErrDuplicateName, name)
	}
	c.endpoints[name] = fn
	return nil
}

// MustRegisterCluster is like RegisterCluster but panics on error.
func (c *Catalog) MustRegisterCluster(t zcl.Type) {
	if err := c.RegisterCluster(t); err != nil {
		panic(err)
	}
}

// MustRegisterEndpoint is like RegisterEndpoint but panics on error.
func (c *Catalog) MustRegisterEndpoint(name string, fn quirks.EndpointConstructor) {
	if err := c.RegisterEndpoint(name, fn); err != nil {
		panic(err)
	}
}

// Cluster looks up a cluster type by name.
func (c *Catalog) Cluster(name string) (zcl.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.clusters[name]
	return t, ok
}

// Endpoint looks up an endpoint constructor by name.
func (c *Catalog) Endpoint(name string) (quirks.EndpointConstructor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.endpoints[name]
	return fn, ok
}

// ClusterNames returns the registered cluster type names, sorted.
func (c *Catalog) ClusterNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.clusters))
	for name := range c.clusters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EndpointNames returns the registered endpoint constructor names, sorted.
func (c *Catalog) EndpointNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.endpoints))
	for name := range c.endpoints {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
