package model

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Device errors.
var (
	ErrDuplicateEndpoint = errors.New("duplicate endpoint ID")
	ErrForeignEndpoint   = errors.New("endpoint belongs to another device")
)

// Node is the device-shaped contract shared by plain devices and quirk
// instances.
type Node interface {
	IEEE() EUI64
	NWK() uint16
	Endpoint(id uint8) (Endpoint, error)
	Endpoints() []Endpoint
	EndpointIDs() []uint8
	AddEndpoint(id uint8) (*StandardEndpoint, error)
	Info() *DeviceInfo
}

// Device is a node on the mesh network with its endpoints.
type Device struct {
	mu sync.RWMutex

	// IEEE is the stable long-term identifier.
	ieee EUI64

	// NWK is the short network address.
	nwk uint16

	// Clusters resolves cluster ids when clusters are added by id.
	clusters *zcl.Registry

	// Endpoints indexed by ID.
	endpoints map[uint8]Endpoint
}

// Option configures a Device.
type Option func(*Device)

// WithClusterRegistry makes the device resolve cluster ids through r
// instead of zcl.Default.
func WithClusterRegistry(r *zcl.Registry) Option {
	return func(d *Device) {
		if r != nil {
			d.clusters = r
		}
	}
}

// NewDevice creates a device with no endpoints.
func NewDevice(ieee EUI64, nwk uint16, opts ...Option) *Device {
	d := &Device{
		ieee:      ieee,
		nwk:       nwk,
		clusters:  zcl.Default,
		endpoints: make(map[uint8]Endpoint),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IEEE returns the IEEE address.
func (d *Device) IEEE() EUI64 {
	return d.ieee
}

// NWK returns the network address.
func (d *Device) NWK() uint16 {
	return d.nwk
}

// Clusters returns the cluster registry used by this device.
func (d *Device) Clusters() *zcl.Registry {
	return d.clusters
}

// AddEndpoint creates and attaches an empty standard endpoint.
// Returns ErrDuplicateEndpoint if the id is already taken.
func (d *Device) AddEndpoint(id uint8) (*StandardEndpoint, error) {
	ep := NewEndpoint(d, id)
	if err := d.AttachEndpoint(ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// AttachEndpoint attaches an already constructed endpoint.
// Standard endpoints must have been created for this device.
func (d *Device) AttachEndpoint(ep Endpoint) error {
	if se, ok := ep.(*StandardEndpoint); ok && se.device != d {
		return fmt.Errorf("endpoint %d: %w", ep.ID(), ErrForeignEndpoint)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.endpoints[ep.ID()]; exists {
		return fmt.Errorf("endpoint %d: %w", ep.ID(), ErrDuplicateEndpoint)
	}
	d.endpoints[ep.ID()] = ep
	return nil
}

// Endpoint returns an endpoint by ID.
func (d *Device) Endpoint(id uint8) (Endpoint, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ep, exists := d.endpoints[id]
	if !exists {
		return nil, fmt.Errorf("endpoint %d: %w", id, ErrEndpointNotFound)
	}
	return ep, nil
}

// HasEndpoint returns true if the device has an endpoint with the given id.
func (d *Device) HasEndpoint(id uint8) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, exists := d.endpoints[id]
	return exists
}

// EndpointIDs returns the endpoint ids in ascending order.
func (d *Device) EndpointIDs() []uint8 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]uint8, 0, len(d.endpoints))
	for id := range d.endpoints {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Endpoints returns all endpoints ordered by id.
func (d *Device) Endpoints() []Endpoint {
	ids := d.EndpointIDs()

	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Endpoint, 0, len(ids))
	for _, id := range ids {
		if ep, ok := d.endpoints[id]; ok {
			result = append(result, ep)
		}
	}
	return result
}

// EndpointCount returns the number of endpoints.
func (d *Device) EndpointCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.endpoints)
}

// Info returns a description of the device.
func (d *Device) Info() *DeviceInfo {
	return InfoOf(d)
}

// Compile-time interface satisfaction check.
var _ Node = (*Device)(nil)
