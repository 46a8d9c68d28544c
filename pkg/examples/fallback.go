package examples

import (
	"fmt"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// NewMirrorEndpoint rebuilds the replaced endpoint with the same profile,
// device type and clusters. Extra cluster id arguments (zcl.ClusterID or
// int) are added as output clusters; any other argument is an error.
func NewMirrorEndpoint(dev *quirks.CustomDevice, id uint8, replaced model.Endpoint, args ...any) (model.Endpoint, error) {
	ep := model.NewEndpoint(dev.Device, id)
	ep.SetProfileID(replaced.ProfileID())
	ep.SetDeviceType(replaced.DeviceType())

	for cid := range replaced.InClusters() {
		if _, err := ep.AddInputCluster(cid); err != nil {
			return nil, err
		}
	}
	outs := replaced.OutClusters()
	for cid := range outs {
		if _, err := ep.AddOutputCluster(cid); err != nil {
			return nil, err
		}
	}
	for _, a := range args {
		cid, ok := clusterArg(a)
		if !ok {
			return nil, fmt.Errorf("mirror endpoint %d: invalid cluster id %v", id, a)
		}
		if _, exists := outs[cid]; exists {
			continue
		}
		if _, err := ep.AddOutputCluster(cid); err != nil {
			return nil, err
		}
	}
	return ep, nil
}

// OTAFallback matches any device with endpoint 1 and adds the OTA client
// cluster to it. Since it matches nearly everything it must be registered
// after every specific quirk.
func OTAFallback() *quirks.Definition {
	return &quirks.Definition{
		Name:      "generic.ota",
		Signature: quirks.Signature{1: {}},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.CustomEndpoint{New: NewMirrorEndpoint, Args: []any{zcl.Ota}},
			},
		},
	}
}

func clusterArg(a any) (zcl.ClusterID, bool) {
	switch v := a.(type) {
	case zcl.ClusterID:
		return v, true
	case int:
		if v >= 0 && v <= 0xFFFF {
			return zcl.ClusterID(v), true
		}
	}
	return 0, false
}
