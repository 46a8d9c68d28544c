package quirks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

var testIEEE = model.MustParseEUI64("00:0d:6f:00:0a:90:69:e7")

type endpointSpec struct {
	id         uint8
	profileID  uint16
	deviceType uint16
	in, out    []zcl.ClusterID
}

func buildDevice(t *testing.T, specs ...endpointSpec) *model.Device {
	t.Helper()

	d := model.NewDevice(testIEEE, 0x1234)
	for _, s := range specs {
		ep, err := d.AddEndpoint(s.id)
		require.NoError(t, err)
		ep.SetProfileID(s.profileID)
		ep.SetDeviceType(s.deviceType)
		for _, id := range s.in {
			_, err := ep.AddInputCluster(id)
			require.NoError(t, err)
		}
		for _, id := range s.out {
			_, err := ep.AddOutputCluster(id)
			require.NoError(t, err)
		}
	}
	return d
}

// realDevice is a device with one endpoint: profile 255, device type 255,
// input cluster 3 and output cluster 6.
func realDevice(t *testing.T) *model.Device {
	t.Helper()
	return buildDevice(t, endpointSpec{
		id: 1, profileID: 255, deviceType: 255,
		in:  []zcl.ClusterID{3},
		out: []zcl.ClusterID{6},
	})
}

// myCluster is a quirk-local cluster that is never registered globally.
type myCluster struct {
	*zcl.Base
}

var myClusterType = zcl.Type{
	ID:   0x8888,
	Name: "MyCluster",
	New: func(ep zcl.Endpoint) zcl.Cluster {
		return &myCluster{zcl.NewBase(0x8888, "MyCluster", ep)}
	},
}

// myEndpoint is a quirk-specific endpoint type.
type myEndpoint struct {
	*model.StandardEndpoint
	args     []any
	replaced model.Endpoint
}
