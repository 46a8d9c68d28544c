// Package zcl models clusters as seen by the quirk engine.
//
// A cluster is a typed capability exposed by an endpoint and identified by a
// numeric id. The package does not implement attribute or command semantics;
// it only knows how to construct a cluster bound to its owning endpoint.
//
// # Scopes
//
// Cluster implementations are described by a Type (id, name, constructor).
// Types live in one of two places:
//
//   - a Registry, the shared scope keyed by cluster id. Default holds the
//     standard general and measurement clusters.
//   - a quirk, which may carry its own Type for an id. Such types are
//     instantiated directly and never written into a Registry.
//
// # Usage
//
//	c := zcl.Default.New(zcl.OnOff, ep)
//
//	custom := zcl.Type{ID: 0xFCC0, Name: "LumiOpple", New: newOpple}
//	c, err := custom.Instantiate(ep)
package zcl
