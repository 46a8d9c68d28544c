// Package model implements the host device model the quirk engine works on.
//
// # Device Model Hierarchy
//
//	Device > Endpoint > Cluster
//
// A Device is a node on the mesh network, identified by its IEEE address
// (EUI64) and its current network address. Devices own endpoints keyed by a
// small integer id. Each endpoint carries a profile id, a device type and two
// cluster maps (input/server and output/client), keyed by cluster id.
//
//	Device (00:15:8d:00:01:02:03:04, nwk 0x1a2b)
//	├── Endpoint 1 (profile 0x0104, type 0x0302)
//	│   ├── in:  Basic, Identify, TemperatureMeasurement
//	│   └── out: Ota
//	└── Endpoint 2 ...
//
// # Endpoint Kinds
//
// Endpoint is an interface. Discovery and the quirk builder create
// StandardEndpoint values; a quirk may supply its own endpoint type, which
// usually embeds *StandardEndpoint.
//
// # Node
//
// Node is the device-shaped contract. Both *Device and quirk instances
// implement it, so code downstream of resolution does not care which one it
// holds.
//
// # Snapshots
//
// DeviceInfo and EndpointInfo are plain descriptions of a device, encoded
// with CBOR integer keys or YAML. FromInfo rebuilds a Device from one. They
// are meant for tooling and tests, not for persistence.
package model
