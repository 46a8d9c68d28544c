package zcl

import (
	"errors"
	"fmt"
)

// Cluster errors.
var (
	ErrNoConstructor     = errors.New("cluster type has no constructor")
	ErrClusterIDMismatch = errors.New("constructed cluster reports a different id")
	ErrDuplicateCluster  = errors.New("duplicate cluster ID")
)

// ClusterID identifies a cluster.
type ClusterID uint16

// ManufacturerBase is the first id of the manufacturer-specific range.
const ManufacturerBase ClusterID = 0xFC00

// IsManufacturerSpecific returns true for ids in the manufacturer range.
func (id ClusterID) IsManufacturerSpecific() bool {
	return id >= ManufacturerBase
}

// String returns the id in hex form.
func (id ClusterID) String() string {
	return fmt.Sprintf("0x%04X", uint16(id))
}

// Endpoint is the owning endpoint as seen by a cluster.
type Endpoint interface {
	ID() uint8
}

// Cluster is a cluster instance bound to one endpoint.
type Cluster interface {
	ClusterID() ClusterID
	Name() string
	Endpoint() Endpoint
}

// Constructor builds a cluster bound to ep.
type Constructor func(ep Endpoint) Cluster

// Type describes a cluster implementation.
type Type struct {
	ID   ClusterID
	Name string
	New  Constructor
}

// Instantiate builds a cluster of this type bound to ep.
func (t Type) Instantiate(ep Endpoint) (Cluster, error) {
	if t.New == nil {
		return nil, fmt.Errorf("%s (%s): %w", t.Name, t.ID, ErrNoConstructor)
	}
	c := t.New(ep)
	if c == nil {
		return nil, fmt.Errorf("%s (%s): %w", t.Name, t.ID, ErrNoConstructor)
	}
	if c.ClusterID() != t.ID {
		return nil, fmt.Errorf("%s: declared %s, built %s: %w", t.Name, t.ID, c.ClusterID(), ErrClusterIDMismatch)
	}
	return c, nil
}

// Base is the minimal Cluster implementation. Custom clusters embed it.
type Base struct {
	id       ClusterID
	name     string
	endpoint Endpoint
}

// NewBase creates a cluster with the given identity bound to ep.
func NewBase(id ClusterID, name string, ep Endpoint) *Base {
	return &Base{id: id, name: name, endpoint: ep}
}

// ClusterID returns the cluster id.
func (b *Base) ClusterID() ClusterID {
	return b.id
}

// Name returns the cluster name.
func (b *Base) Name() string {
	return b.name
}

// Endpoint returns the owning endpoint.
func (b *Base) Endpoint() Endpoint {
	return b.endpoint
}

// Compile-time interface satisfaction check.
var _ Cluster = (*Base)(nil)
