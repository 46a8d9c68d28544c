package examples

import (
	"fmt"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// GangEndpoint is one relay of a multi-gang wall switch.
type GangEndpoint struct {
	*model.StandardEndpoint

	gang int
}

// Gang returns the 1-based relay number.
func (e *GangEndpoint) Gang() int {
	return e.gang
}

// NewGangEndpoint builds a switch relay endpoint. It keeps the profile and
// device type of the endpoint it replaces and exposes OnOff only. The
// optional first argument is the relay number; it defaults to the endpoint
// id.
func NewGangEndpoint(dev *quirks.CustomDevice, id uint8, replaced model.Endpoint, args ...any) (model.Endpoint, error) {
	ep := &GangEndpoint{
		StandardEndpoint: model.NewEndpoint(dev.Device, id),
		gang:             int(id),
	}
	if len(args) > 0 {
		gang, ok := args[0].(int)
		if !ok || gang < 1 {
			return nil, fmt.Errorf("gang endpoint %d: invalid relay number %v", id, args[0])
		}
		ep.gang = gang
	}

	ep.SetProfileID(replaced.ProfileID())
	ep.SetDeviceType(replaced.DeviceType())
	if _, err := ep.AddInputCluster(zcl.OnOff); err != nil {
		return nil, err
	}
	return ep, nil
}

// TwoGangSwitch is the lumi.ctrl_neutral2 wall switch. Its second relay
// announces a MultistateInput cluster that never reports; the relay is
// rebuilt as a GangEndpoint.
func TwoGangSwitch() *quirks.Definition {
	return &quirks.Definition{
		Name: "lumi.ctrl_neutral2",
		Signature: quirks.Signature{
			1: {
				ProfileID:     quirks.Uint16(HomeAutomationProfile),
				InputClusters: []zcl.ClusterID{zcl.Basic, zcl.Identify, zcl.OnOff},
			},
			2: {
				ProfileID:     quirks.Uint16(HomeAutomationProfile),
				InputClusters: []zcl.ClusterID{zcl.OnOff, zcl.MultistateInput},
			},
		},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.EndpointOverride{
					InputClusters: []quirks.ClusterEntry{
						quirks.ByType(XiaomiBasicType),
						quirks.ByID(zcl.Identify),
						quirks.ByID(zcl.OnOff),
					},
				},
				2: quirks.CustomEndpoint{New: NewGangEndpoint, Args: []any{2}},
			},
		},
	}
}
