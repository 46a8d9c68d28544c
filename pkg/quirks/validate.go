package quirks

import (
	"errors"
	"fmt"

	"github.com/smdjeff/zigpy/pkg/zcl"
)

// Validate checks a definition for authoring defects and returns all of
// them joined, or nil. ByID clusters must be registered in clusters (nil
// means zcl.Default) or provided by the quirk itself.
func Validate(def *Definition, clusters *zcl.Registry) error {
	if clusters == nil {
		clusters = zcl.Default
	}

	var errs []error
	fail := func(ep *uint8, field, detail string, err error) {
		ve := &ValidationError{Quirk: def.Name, Field: field, Detail: detail, Err: err}
		if ep != nil {
			ve.Endpoint, ve.HasEndpoint = *ep, true
		}
		errs = append(errs, ve)
	}

	if def.Name == "" {
		fail(nil, "name", "", ErrUnnamedQuirk)
	}

	local := def.Replacement.localTypes()
	for _, id := range def.Replacement.EndpointIDs() {
		r := def.Replacement.Endpoints[id]
		_, inSignature := def.Signature[id]

		if ce, ok := asCustom(r); ok {
			if ce.New == nil {
				fail(&id, "custom", "", ErrNoConstructor)
			}
			continue
		}

		ov, ok := asOverride(r)
		if !ok {
			fail(&id, "endpoints", fmt.Sprintf("unsupported replacement %T", r), ErrMalformedReplacement)
			continue
		}

		if !inSignature && (ov.ProfileID == nil || ov.DeviceType == nil) {
			fail(&id, "endpoints", "not in signature and lacks profile_id and device_type", ErrMalformedReplacement)
		}

		for _, dir := range []struct {
			field   string
			entries []ClusterEntry
		}{
			{"input_clusters", ov.InputClusters},
			{"output_clusters", ov.OutputClusters},
		} {
			field, entries := dir.field, dir.entries
			seen := make(map[zcl.ClusterID]bool, len(entries))
			for _, e := range entries {
				if seen[e.ID()] {
					fail(&id, field, "duplicate cluster "+e.ID().String(), ErrMalformedReplacement)
				}
				seen[e.ID()] = true

				if t, ok := e.Type(); ok {
					if t.New == nil || t.Name == "" {
						fail(&id, field, fmt.Sprintf("cluster type %s needs a name and constructor", t.ID), ErrMalformedReplacement)
					}
					continue
				}
				if _, ok := local[e.ID()]; !ok && !clusters.Has(e.ID()) {
					fail(&id, field, "cluster "+e.ID().String()+" is not registered", ErrMalformedReplacement)
				}
			}
		}
	}

	return errors.Join(errs...)
}

// Validate checks every registered definition.
func (r *Registry) Validate(clusters *zcl.Registry) error {
	var errs []error
	for _, def := range r.All() {
		if err := Validate(def, clusters); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
