package quirks

import (
	"fmt"
	"slices"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// CustomDevice is a device rebuilt from a quirk. It has its own endpoints
// and shares the identity (IEEE, NWK) and cluster registry of the device it
// replaces.
type CustomDevice struct {
	*model.Device

	quirk    *Definition
	replaces *model.Device
}

// Quirk returns the definition the device was built from.
func (d *CustomDevice) Quirk() *Definition {
	return d.quirk
}

// Replaces returns the original device.
func (d *CustomDevice) Replaces() *model.Device {
	return d.replaces
}

// ProfileID returns the replacement's top-level profile id, or the profile
// id of the original device's first endpoint.
func (d *CustomDevice) ProfileID() uint16 {
	if p := d.quirk.Replacement.ProfileID; p != nil {
		return *p
	}
	if ep := d.firstOriginal(); ep != nil {
		return ep.ProfileID()
	}
	return 0
}

// DeviceType returns the replacement's top-level device type, or the device
// type of the original device's first endpoint.
func (d *CustomDevice) DeviceType() uint16 {
	if t := d.quirk.Replacement.DeviceType; t != nil {
		return *t
	}
	if ep := d.firstOriginal(); ep != nil {
		return ep.DeviceType()
	}
	return 0
}

func (d *CustomDevice) firstOriginal() model.Endpoint {
	eps := d.replaces.Endpoints()
	if len(eps) == 0 {
		return nil
	}
	return eps[0]
}

// Compile-time interface satisfaction check.
var _ model.Node = (*CustomDevice)(nil)

// Build constructs the quirk def for real.
//
// Every endpoint named by the replacement must exist on real. Endpoints of
// real that the replacement does not mention are carried over as empty
// standard endpoints.
func Build(def *Definition, real *model.Device) (*CustomDevice, error) {
	repl := def.Replacement
	for _, id := range repl.EndpointIDs() {
		if !real.HasEndpoint(id) {
			return nil, &ConstructionError{Quirk: def.Name, Endpoint: id, Err: ErrEndpointMissing}
		}
	}

	dev := &CustomDevice{
		Device:   model.NewDevice(real.IEEE(), real.NWK(), model.WithClusterRegistry(real.Clusters())),
		quirk:    def,
		replaces: real,
	}
	b := &builder{
		dev:   dev,
		repl:  repl,
		local: repl.localTypes(),
	}

	ids := slices.Concat(real.EndpointIDs(), repl.EndpointIDs())
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if err := b.endpoint(id); err != nil {
			return nil, &ConstructionError{Quirk: def.Name, Endpoint: id, Err: err}
		}
	}
	return dev, nil
}

type builder struct {
	dev   *CustomDevice
	repl  Replacement
	local map[zcl.ClusterID]zcl.Type
}

func (b *builder) endpoint(id uint8) error {
	r, ok := b.repl.Endpoints[id]
	if !ok {
		_, err := b.dev.AddEndpoint(id)
		return err
	}

	replaced, err := b.dev.replaces.Endpoint(id)
	if err != nil {
		return ErrEndpointMissing
	}

	if ov, ok := asOverride(r); ok {
		return b.override(id, ov, replaced)
	}
	if ce, ok := asCustom(r); ok {
		return b.custom(id, ce, replaced)
	}
	return fmt.Errorf("%w: unsupported endpoint replacement %T", ErrMalformedReplacement, r)
}

func (b *builder) custom(id uint8, ce CustomEndpoint, replaced model.Endpoint) error {
	if ce.New == nil {
		return ErrNoConstructor
	}
	ep, err := ce.New(b.dev, id, replaced, ce.Args...)
	if err != nil {
		return err
	}
	if ep == nil {
		return ErrNoConstructor
	}
	if ep.ID() != id {
		return fmt.Errorf("%w: got %d", ErrEndpointIDMismatch, ep.ID())
	}
	return b.dev.AttachEndpoint(ep)
}

func (b *builder) override(id uint8, ov EndpointOverride, replaced model.Endpoint) error {
	ep := model.NewEndpoint(b.dev.Device, id)
	ep.SetProfileID(pick(ov.ProfileID, replaced.ProfileID()))
	ep.SetDeviceType(pick(ov.DeviceType, replaced.DeviceType()))

	for _, e := range ov.InputClusters {
		c, err := b.cluster(e, ep)
		if err != nil {
			return err
		}
		if err := ep.AttachInputCluster(c); err != nil {
			return err
		}
	}
	for _, e := range ov.OutputClusters {
		c, err := b.cluster(e, ep)
		if err != nil {
			return err
		}
		if err := ep.AttachOutputCluster(c); err != nil {
			return err
		}
	}
	return b.dev.AttachEndpoint(ep)
}

// cluster instantiates an entry: quirk-local types first, then the device's
// cluster registry. Local types are never registered anywhere.
func (b *builder) cluster(e ClusterEntry, ep *model.StandardEndpoint) (zcl.Cluster, error) {
	if t, ok := e.Type(); ok {
		return t.Instantiate(ep)
	}
	if t, ok := b.local[e.ID()]; ok {
		return t.Instantiate(ep)
	}
	return b.dev.Clusters().New(e.ID(), ep), nil
}

// pick returns the override if set, else the value of the replaced endpoint.
func pick(override *uint16, inherited uint16) uint16 {
	if override != nil {
		return *override
	}
	return inherited
}
