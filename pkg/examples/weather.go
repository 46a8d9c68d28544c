package examples

import (
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Aqara (LUMI) device constants.
const (
	// LumiManufacturerCluster carries the vendor's proprietary attributes.
	LumiManufacturerCluster zcl.ClusterID = 0xFCC0

	// LumiWeatherDeviceType is the non-standard device type reported by
	// the lumi.weather sensor.
	LumiWeatherDeviceType uint16 = 0x5F01

	// TemperatureSensorDeviceType is the Home Automation device type.
	TemperatureSensorDeviceType uint16 = 0x0302

	// HomeAutomationProfile is the Home Automation profile id.
	HomeAutomationProfile uint16 = 0x0104
)

// XiaomiBasic replaces the Basic cluster on LUMI devices, which report
// battery and sensor values through a proprietary Basic attribute.
type XiaomiBasic struct {
	*zcl.Base
}

// XiaomiBasicType is the quirk-local Basic cluster of LUMI devices.
var XiaomiBasicType = zcl.Type{
	ID:   zcl.Basic,
	Name: "XiaomiBasic",
	New: func(ep zcl.Endpoint) zcl.Cluster {
		return &XiaomiBasic{Base: zcl.NewBase(zcl.Basic, "XiaomiBasic", ep)}
	},
}

// WeatherSensor is the lumi.weather temperature, humidity and pressure
// sensor. It reports a vendor device type and announces a Basic cluster
// that does not behave like the standard one.
func WeatherSensor() *quirks.Definition {
	return &quirks.Definition{
		Name: "lumi.weather",
		Signature: quirks.Signature{
			1: {
				ProfileID:  quirks.Uint16(HomeAutomationProfile),
				DeviceType: quirks.Uint16(LumiWeatherDeviceType),
				InputClusters: []zcl.ClusterID{
					zcl.Basic,
					zcl.Identify,
					zcl.TemperatureMeasurement,
					zcl.PressureMeasurement,
					zcl.RelativeHumidity,
				},
				OutputClusters: []zcl.ClusterID{zcl.Basic, zcl.Groups},
			},
		},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.EndpointOverride{
					DeviceType: quirks.Uint16(TemperatureSensorDeviceType),
					InputClusters: []quirks.ClusterEntry{
						quirks.ByType(XiaomiBasicType),
						quirks.ByID(zcl.PowerConfiguration),
						quirks.ByID(zcl.Identify),
						quirks.ByID(zcl.TemperatureMeasurement),
						quirks.ByID(zcl.PressureMeasurement),
						quirks.ByID(zcl.RelativeHumidity),
					},
					OutputClusters: []quirks.ClusterEntry{
						// Resolves to XiaomiBasic.
						quirks.ByID(zcl.Basic),
						quirks.ByID(zcl.Groups),
					},
				},
			},
		},
	}
}
