package model

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/smdjeff/zigpy/pkg/zcl"
)

// DeviceInfo describes a device and its endpoints.
type DeviceInfo struct {
	IEEE      EUI64           `cbor:"1,keyasint" yaml:"ieee"`
	NWK       uint16          `cbor:"2,keyasint" yaml:"nwk"`
	Endpoints []*EndpointInfo `cbor:"3,keyasint" yaml:"endpoints"`
}

// InfoOf describes any Node.
func InfoOf(n Node) *DeviceInfo {
	eps := n.Endpoints()
	info := &DeviceInfo{
		IEEE:      n.IEEE(),
		NWK:       n.NWK(),
		Endpoints: make([]*EndpointInfo, 0, len(eps)),
	}
	for _, ep := range eps {
		info.Endpoints = append(info.Endpoints, EndpointInfoOf(ep))
	}
	return info
}

// FromInfo rebuilds a device from its description. Clusters are created
// through the device's cluster registry.
func FromInfo(info *DeviceInfo, opts ...Option) (*Device, error) {
	d := NewDevice(info.IEEE, info.NWK, opts...)

	for _, epInfo := range info.Endpoints {
		ep, err := d.AddEndpoint(epInfo.ID)
		if err != nil {
			return nil, err
		}
		ep.SetProfileID(epInfo.ProfileID)
		ep.SetDeviceType(epInfo.DeviceType)

		for _, id := range epInfo.InClusters {
			if _, err := ep.AddInputCluster(zcl.ClusterID(id)); err != nil {
				return nil, err
			}
		}
		for _, id := range epInfo.OutClusters {
			if _, err := ep.AddOutputCluster(zcl.ClusterID(id)); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

var (
	infoEncMode cbor.EncMode
	infoDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}
	infoEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create info CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	infoDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create info CBOR decoder mode: %v", err))
	}
}

// EncodeInfo encodes a device description to CBOR.
func EncodeInfo(info *DeviceInfo) ([]byte, error) {
	return infoEncMode.Marshal(info)
}

// DecodeInfo decodes a CBOR device description.
func DecodeInfo(data []byte) (*DeviceInfo, error) {
	var info DeviceInfo
	if err := infoDecMode.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decoding device info: %w", err)
	}
	return &info, nil
}
