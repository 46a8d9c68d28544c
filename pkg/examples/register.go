package examples

import (
	"github.com/smdjeff/zigpy/pkg/quirkfile"
	"github.com/smdjeff/zigpy/pkg/quirks"
)

// Names under which Catalog exposes the example constructors.
const (
	GangEndpointName   = "gang"
	MirrorEndpointName = "mirror"
)

// All returns fresh copies of the example quirks, most specific first.
func All() []*quirks.Definition {
	return []*quirks.Definition{
		WeatherSensor(),
		TwoGangSwitch(),
		OTAFallback(),
	}
}

// Register adds the example quirks to reg, most specific first, and returns
// the registered definitions.
func Register(reg *quirks.Registry) []*quirks.Definition {
	defs := All()
	for _, def := range defs {
		reg.Register(def)
	}
	return defs
}

// Catalog returns a catalog with the example cluster types and endpoint
// constructors, for use by quirk files.
func Catalog() *quirkfile.Catalog {
	cat := quirkfile.NewCatalog()
	cat.MustRegisterCluster(XiaomiBasicType)
	cat.MustRegisterEndpoint(GangEndpointName, NewGangEndpoint)
	cat.MustRegisterEndpoint(MirrorEndpointName, NewMirrorEndpoint)
	return cat
}
