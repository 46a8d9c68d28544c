// Package quirks decides whether a discovered device needs a hand-authored
// replacement and builds it.
//
// A quirk is a Definition pairing a Signature (partial match criteria over
// a device's endpoints) with a Replacement (how to rebuild the endpoints and
// clusters). Definitions are collected in a Registry by explicit Register
// calls, normally from an init or main function:
//
//	var LumiWeather = quirks.Register(&quirks.Definition{
//	    Name: "lumi-weather",
//	    Signature: quirks.Signature{
//	        1: {
//	            ProfileID:     quirks.Uint16(0x0104),
//	            DeviceType:    quirks.Uint16(0x5f01),
//	            InputClusters: []zcl.ClusterID{zcl.Basic, zcl.Identify, 0xFFFF},
//	        },
//	    },
//	    Replacement: quirks.Replacement{
//	        Endpoints: map[uint8]quirks.EndpointReplacement{
//	            1: quirks.EndpointOverride{
//	                DeviceType: quirks.Uint16(0x0302),
//	                InputClusters: []quirks.ClusterEntry{
//	                    quirks.ByType(lumiBasic),
//	                    quirks.ByID(zcl.TemperatureMeasurement),
//	                },
//	            },
//	        },
//	    },
//	})
//
// # Resolution
//
// Get walks the registry in registration order and builds the first quirk
// whose signature matches. A more specific quirk must therefore be
// registered before a more general one. When nothing matches, the original
// device is returned as is.
//
// # Cluster Scopes
//
// ByID entries resolve through the quirk's own cluster types first, then the
// device's cluster registry. ByType entries are instantiated directly. Quirk
// cluster types are never added to a zcl.Registry, so the same cluster id may
// map to different implementations in different quirks.
//
// # Registry Lifecycle
//
// Registries are populated once at startup and only read afterwards.
// Concurrent resolutions are safe. Pop and Reset exist for tests and tools.
package quirks
