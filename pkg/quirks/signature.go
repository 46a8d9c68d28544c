package quirks

import (
	"fmt"
	"slices"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// EndpointSignature holds the match criteria for one endpoint.
// A nil field is a wildcard.
type EndpointSignature struct {
	ProfileID  *uint16
	DeviceType *uint16

	// InputClusters must all be present; the device may expose more.
	InputClusters []zcl.ClusterID

	// OutputClusters must all be present; the device may expose more.
	OutputClusters []zcl.ClusterID
}

// Signature maps endpoint ids to match criteria.
// An empty Signature matches every device.
type Signature map[uint8]EndpointSignature

// Uint16 returns a pointer to v, for optional signature and replacement fields.
func Uint16(v uint16) *uint16 {
	return &v
}

// Matches reports whether dev satisfies sig.
func Matches(dev model.Node, sig Signature) bool {
	return sig.Mismatch(dev) == ""
}

// Matches reports whether dev satisfies s.
func (s Signature) Matches(dev model.Node) bool {
	return s.Mismatch(dev) == ""
}

// EndpointIDs returns the declared endpoint ids in ascending order.
func (s Signature) EndpointIDs() []uint8 {
	ids := make([]uint8, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Mismatch describes the first criterion dev fails, or returns "" if dev
// matches. Endpoints are checked in ascending id order.
func (s Signature) Mismatch(dev model.Node) string {
	for _, id := range s.EndpointIDs() {
		ep, err := dev.Endpoint(id)
		if err != nil {
			return fmt.Sprintf("endpoint %d: missing", id)
		}
		if reason := s[id].mismatch(ep); reason != "" {
			return fmt.Sprintf("endpoint %d: %s", id, reason)
		}
	}
	return ""
}

func (es EndpointSignature) mismatch(ep model.Endpoint) string {
	if es.ProfileID != nil && ep.ProfileID() != *es.ProfileID {
		return fmt.Sprintf("profile_id 0x%04X != 0x%04X", ep.ProfileID(), *es.ProfileID)
	}
	if es.DeviceType != nil && ep.DeviceType() != *es.DeviceType {
		return fmt.Sprintf("device_type 0x%04X != 0x%04X", ep.DeviceType(), *es.DeviceType)
	}
	if missing, ok := firstMissing(es.InputClusters, ep.InClusters()); !ok {
		return fmt.Sprintf("input cluster %s missing", missing)
	}
	if missing, ok := firstMissing(es.OutputClusters, ep.OutClusters()); !ok {
		return fmt.Sprintf("output cluster %s missing", missing)
	}
	return ""
}

func firstMissing(want []zcl.ClusterID, have map[zcl.ClusterID]zcl.Cluster) (zcl.ClusterID, bool) {
	for _, id := range want {
		if _, ok := have[id]; !ok {
			return id, false
		}
	}
	return 0, true
}
