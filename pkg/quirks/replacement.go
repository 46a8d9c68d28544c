package quirks

import (
	"slices"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Replacement describes how to rebuild a matched device.
type Replacement struct {
	// ProfileID and DeviceType, when set, are the device-level values
	// reported by CustomDevice. Endpoints never inherit them; an
	// EndpointOverride that leaves a field unset keeps the original
	// endpoint's value.
	ProfileID  *uint16
	DeviceType *uint16

	// Endpoints maps endpoint ids to their replacement.
	Endpoints map[uint8]EndpointReplacement
}

// EndpointIDs returns the replaced endpoint ids in ascending order.
func (r Replacement) EndpointIDs() []uint8 {
	ids := make([]uint8, 0, len(r.Endpoints))
	for id := range r.Endpoints {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EndpointReplacement is either an EndpointOverride or a CustomEndpoint.
type EndpointReplacement interface {
	endpointReplacement()
}

// EndpointOverride rebuilds an endpoint as a standard endpoint.
// Nil ProfileID/DeviceType are inherited from the original endpoint.
type EndpointOverride struct {
	ProfileID  *uint16
	DeviceType *uint16

	InputClusters  []ClusterEntry
	OutputClusters []ClusterEntry
}

func (EndpointOverride) endpointReplacement() {}

// EndpointConstructor builds a quirk-specific endpoint. It receives the
// device under construction, the endpoint id, the endpoint it replaces and
// the extra arguments of the CustomEndpoint, and is responsible for its own
// clusters.
type EndpointConstructor func(dev *CustomDevice, id uint8, replaced model.Endpoint, args ...any) (model.Endpoint, error)

// CustomEndpoint replaces an endpoint with a quirk-specific implementation.
type CustomEndpoint struct {
	New  EndpointConstructor
	Args []any
}

func (CustomEndpoint) endpointReplacement() {}

type clusterEntryKind uint8

const (
	clusterByID clusterEntryKind = iota
	clusterByType
)

// ClusterEntry names a cluster in an EndpointOverride, either by id or by a
// quirk-local type.
type ClusterEntry struct {
	kind clusterEntryKind
	id   zcl.ClusterID
	typ  zcl.Type
}

// ByID refers to a cluster by id. The quirk's own types take precedence over
// the device's cluster registry.
func ByID(id zcl.ClusterID) ClusterEntry {
	return ClusterEntry{kind: clusterByID, id: id}
}

// ByType supplies a quirk-local cluster implementation.
func ByType(t zcl.Type) ClusterEntry {
	return ClusterEntry{kind: clusterByType, id: t.ID, typ: t}
}

// ID returns the cluster id of the entry.
func (e ClusterEntry) ID() zcl.ClusterID {
	return e.id
}

// Type returns the quirk-local type for ByType entries.
func (e ClusterEntry) Type() (zcl.Type, bool) {
	if e.kind != clusterByType {
		return zcl.Type{}, false
	}
	return e.typ, true
}

// localTypes collects the quirk-local cluster types of r by id.
// When a quirk lists the same id with several types, the first one wins.
func (r Replacement) localTypes() map[zcl.ClusterID]zcl.Type {
	types := make(map[zcl.ClusterID]zcl.Type)
	for _, id := range r.EndpointIDs() {
		ov, ok := asOverride(r.Endpoints[id])
		if !ok {
			continue
		}
		for _, e := range slices.Concat(ov.InputClusters, ov.OutputClusters) {
			if t, ok := e.Type(); ok {
				if _, seen := types[t.ID]; !seen {
					types[t.ID] = t
				}
			}
		}
	}
	return types
}

func asOverride(r EndpointReplacement) (EndpointOverride, bool) {
	switch v := r.(type) {
	case EndpointOverride:
		return v, true
	case *EndpointOverride:
		if v != nil {
			return *v, true
		}
	}
	return EndpointOverride{}, false
}

func asCustom(r EndpointReplacement) (CustomEndpoint, bool) {
	switch v := r.(type) {
	case CustomEndpoint:
		return v, true
	case *CustomEndpoint:
		if v != nil {
			return *v, true
		}
	}
	return CustomEndpoint{}, false
}
