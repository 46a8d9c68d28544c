package zcl

// General cluster ids.
const (
	Basic              ClusterID = 0x0000
	PowerConfiguration ClusterID = 0x0001
	DeviceTemperature  ClusterID = 0x0002
	Identify           ClusterID = 0x0003
	Groups             ClusterID = 0x0004
	Scenes             ClusterID = 0x0005
	OnOff              ClusterID = 0x0006
	OnOffConfiguration ClusterID = 0x0007
	LevelControl       ClusterID = 0x0008
	Alarms             ClusterID = 0x0009
	Time               ClusterID = 0x000A
	AnalogInput        ClusterID = 0x000C
	AnalogOutput       ClusterID = 0x000D
	BinaryInput        ClusterID = 0x000F
	MultistateInput    ClusterID = 0x0012
	Ota                ClusterID = 0x0019
	PollControl        ClusterID = 0x0020
)

// Closures, HVAC and lighting cluster ids.
const (
	WindowCovering ClusterID = 0x0102
	Thermostat     ClusterID = 0x0201
	ColorControl   ClusterID = 0x0300
)

// Measurement and sensing cluster ids.
const (
	IlluminanceMeasurement ClusterID = 0x0400
	TemperatureMeasurement ClusterID = 0x0402
	PressureMeasurement    ClusterID = 0x0403
	RelativeHumidity       ClusterID = 0x0405
	OccupancySensing       ClusterID = 0x0406
)

// Security and smart-energy cluster ids.
const (
	IasZone               ClusterID = 0x0500
	Metering              ClusterID = 0x0702
	ElectricalMeasurement ClusterID = 0x0B04
	Diagnostics           ClusterID = 0x0B05
	LightLink             ClusterID = 0x1000
)

var standardNames = map[ClusterID]string{
	Basic:                  "Basic",
	PowerConfiguration:     "PowerConfiguration",
	DeviceTemperature:      "DeviceTemperature",
	Identify:               "Identify",
	Groups:                 "Groups",
	Scenes:                 "Scenes",
	OnOff:                  "OnOff",
	OnOffConfiguration:     "OnOffConfiguration",
	LevelControl:           "LevelControl",
	Alarms:                 "Alarms",
	Time:                   "Time",
	AnalogInput:            "AnalogInput",
	AnalogOutput:           "AnalogOutput",
	BinaryInput:            "BinaryInput",
	MultistateInput:        "MultistateInput",
	Ota:                    "Ota",
	PollControl:            "PollControl",
	WindowCovering:         "WindowCovering",
	Thermostat:             "Thermostat",
	ColorControl:           "ColorControl",
	IlluminanceMeasurement: "IlluminanceMeasurement",
	TemperatureMeasurement: "TemperatureMeasurement",
	PressureMeasurement:    "PressureMeasurement",
	RelativeHumidity:       "RelativeHumidity",
	OccupancySensing:       "OccupancySensing",
	IasZone:                "IasZone",
	Metering:               "Metering",
	ElectricalMeasurement:  "ElectricalMeasurement",
	Diagnostics:            "Diagnostics",
	LightLink:              "LightLink",
}

// StandardName returns the name of a standard cluster, or "" if id is not
// a standard cluster.
func StandardName(id ClusterID) string {
	return standardNames[id]
}

// StandardType returns the Type of a standard cluster.
func StandardType(id ClusterID) (Type, bool) {
	name, ok := standardNames[id]
	if !ok {
		return Type{}, false
	}
	return Type{
		ID:   id,
		Name: name,
		New: func(ep Endpoint) Cluster {
			return NewBase(id, name, ep)
		},
	}, true
}

// StandardTypes returns the Types of all standard clusters.
func StandardTypes() []Type {
	types := make([]Type, 0, len(standardNames))
	for id := range standardNames {
		t, _ := StandardType(id)
		types = append(types, t)
	}
	return types
}
