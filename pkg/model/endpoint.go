package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Endpoint errors.
var (
	ErrEndpointNotFound = errors.New("endpoint not found")
	ErrClusterNotFound  = errors.New("cluster not found")
)

// Endpoint is a logical sub-unit of a device.
type Endpoint interface {
	// ID is the endpoint id on the owning device.
	ID() uint8

	// ProfileID is the application profile, e.g. 0x0104 for Home Automation.
	ProfileID() uint16

	// DeviceType is the profile-specific device type.
	DeviceType() uint16

	// InClusters returns a copy of the input (server) clusters by id.
	InClusters() map[zcl.ClusterID]zcl.Cluster

	// OutClusters returns a copy of the output (client) clusters by id.
	OutClusters() map[zcl.ClusterID]zcl.Cluster
}

// StandardEndpoint is the endpoint implementation used by discovery.
type StandardEndpoint struct {
	mu sync.RWMutex

	device *Device
	id     uint8

	profileID  uint16
	deviceType uint16

	inClusters  map[zcl.ClusterID]zcl.Cluster
	outClusters map[zcl.ClusterID]zcl.Cluster
}

// NewEndpoint creates an empty endpoint owned by dev.
// The endpoint is not attached; see Device.AttachEndpoint.
func NewEndpoint(dev *Device, id uint8) *StandardEndpoint {
	return &StandardEndpoint{
		device:      dev,
		id:          id,
		inClusters:  make(map[zcl.ClusterID]zcl.Cluster),
		outClusters: make(map[zcl.ClusterID]zcl.Cluster),
	}
}

// ID returns the endpoint id.
func (e *StandardEndpoint) ID() uint8 {
	return e.id
}

// Device returns the owning device.
func (e *StandardEndpoint) Device() *Device {
	return e.device
}

// ProfileID returns the profile id.
func (e *StandardEndpoint) ProfileID() uint16 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.profileID
}

// SetProfileID sets the profile id.
func (e *StandardEndpoint) SetProfileID(id uint16) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profileID = id
}

// DeviceType returns the device type.
func (e *StandardEndpoint) DeviceType() uint16 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deviceType
}

// SetDeviceType sets the device type.
func (e *StandardEndpoint) SetDeviceType(t uint16) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deviceType = t
}

// AddInputCluster adds the cluster registered for id as an input cluster.
// Returns zcl.ErrDuplicateCluster if the id is already present.
func (e *StandardEndpoint) AddInputCluster(id zcl.ClusterID) (zcl.Cluster, error) {
	c := e.device.Clusters().New(id, e)
	if err := e.AttachInputCluster(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddOutputCluster adds the cluster registered for id as an output cluster.
// Returns zcl.ErrDuplicateCluster if the id is already present.
func (e *StandardEndpoint) AddOutputCluster(id zcl.ClusterID) (zcl.Cluster, error) {
	c := e.device.Clusters().New(id, e)
	if err := e.AttachOutputCluster(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AttachInputCluster adds an already constructed cluster as an input cluster.
func (e *StandardEndpoint) AttachInputCluster(c zcl.Cluster) error {
	return e.attach(e.inClusters, c, "input")
}

// AttachOutputCluster adds an already constructed cluster as an output cluster.
func (e *StandardEndpoint) AttachOutputCluster(c zcl.Cluster) error {
	return e.attach(e.outClusters, c, "output")
}

func (e *StandardEndpoint) attach(clusters map[zcl.ClusterID]zcl.Cluster, c zcl.Cluster, dir string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := clusters[c.ClusterID()]; exists {
		return fmt.Errorf("endpoint %d %s cluster %s: %w", e.id, dir, c.ClusterID(), zcl.ErrDuplicateCluster)
	}
	clusters[c.ClusterID()] = c
	return nil
}

// InCluster returns the input cluster with the given id.
func (e *StandardEndpoint) InCluster(id zcl.ClusterID) (zcl.Cluster, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.inClusters[id]
	if !ok {
		return nil, ErrClusterNotFound
	}
	return c, nil
}

// OutCluster returns the output cluster with the given id.
func (e *StandardEndpoint) OutCluster(id zcl.ClusterID) (zcl.Cluster, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.outClusters[id]
	if !ok {
		return nil, ErrClusterNotFound
	}
	return c, nil
}

// InClusters returns a copy of the input clusters.
func (e *StandardEndpoint) InClusters() map[zcl.ClusterID]zcl.Cluster {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.inClusters)
}

// OutClusters returns a copy of the output clusters.
func (e *StandardEndpoint) OutClusters() map[zcl.ClusterID]zcl.Cluster {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.outClusters)
}

// EndpointInfo describes an endpoint.
type EndpointInfo struct {
	ID          uint8    `cbor:"1,keyasint" yaml:"id"`
	ProfileID   uint16   `cbor:"2,keyasint" yaml:"profile_id"`
	DeviceType  uint16   `cbor:"3,keyasint" yaml:"device_type"`
	InClusters  []uint16 `cbor:"4,keyasint" yaml:"input_clusters"`
	OutClusters []uint16 `cbor:"5,keyasint" yaml:"output_clusters"`
}

// EndpointInfoOf describes any Endpoint.
func EndpointInfoOf(ep Endpoint) *EndpointInfo {
	return &EndpointInfo{
		ID:          ep.ID(),
		ProfileID:   ep.ProfileID(),
		DeviceType:  ep.DeviceType(),
		InClusters:  sortedIDs(ep.InClusters()),
		OutClusters: sortedIDs(ep.OutClusters()),
	}
}

// Info returns a description of this endpoint.
func (e *StandardEndpoint) Info() *EndpointInfo {
	return EndpointInfoOf(e)
}

func sortedIDs(clusters map[zcl.ClusterID]zcl.Cluster) []uint16 {
	ids := make([]uint16, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, uint16(id))
	}
	slices.Sort(ids)
	return ids
}

// Compile-time interface satisfaction check.
var _ Endpoint = (*StandardEndpoint)(nil)
