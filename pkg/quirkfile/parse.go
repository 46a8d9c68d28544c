package quirkfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/version"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// ErrInvalidDocument is returned for documents that are not a quirk at all,
// e.g. a missing name or an unknown top-level key.
var ErrInvalidDocument = errors.New("quirkfile: invalid document")

// Parse decodes every YAML document in data into a quirk definition, in
// document order. A nil cat is treated as empty.
func Parse(data []byte, cat *Catalog) ([]*quirks.Definition, error) {
	if cat == nil {
		cat = NewCatalog()
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var defs []*quirks.Definition
	for i := 1; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing quirk document %d: %w", i, err)
		}
		if len(doc.Content) == 0 || isNull(doc.Content[0]) {
			continue
		}

		p := &parser{cat: cat}
		def, err := p.definition(doc.Content[0])
		if err != nil {
			return nil, fmt.Errorf("quirk document %d: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

type parser struct {
	cat  *Catalog
	name string
}

// fail reports a defect of the current quirk.
func (p *parser) fail(kind error, ep *uint8, field string, cause error) error {
	ve := &quirks.ValidationError{Quirk: p.name, Field: field, Detail: cause.Error(), Err: kind}
	if ep != nil {
		ve.Endpoint, ve.HasEndpoint = *ep, true
	}
	return ve
}

func (p *parser) definition(n *yaml.Node) (*quirks.Definition, error) {
	fs, err := fields(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	for _, f := range fs {
		if f.key == "name" {
			if f.value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: name must be a string", ErrInvalidDocument, f.value.Line)
			}
			p.name = f.value.Value
		}
	}
	if p.name == "" {
		return nil, fmt.Errorf("%w: line %d: missing name", ErrInvalidDocument, n.Line)
	}

	def := &quirks.Definition{Name: p.name, Signature: quirks.Signature{}}
	for _, f := range fs {
		switch f.key {
		case "name":
		case "format":
			if _, err := version.Check(f.value.Value); err != nil {
				return nil, fmt.Errorf("%w: quirk %q: line %d: %w", ErrInvalidDocument, p.name, f.value.Line, err)
			}
		case "signature":
			if def.Signature, err = p.signature(f.value); err != nil {
				return nil, err
			}
		case "replacement":
			if def.Replacement, err = p.replacement(f.value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: quirk %q: line %d: unknown key %q", ErrInvalidDocument, p.name, f.line, f.key)
		}
	}
	return def, nil
}

func (p *parser) signature(n *yaml.Node) (quirks.Signature, error) {
	sig := quirks.Signature{}
	if isNull(n) {
		return sig, nil
	}

	eps, err := fields(n)
	if err != nil {
		return nil, p.fail(quirks.ErrMalformedSignature, nil, "signature", err)
	}
	for _, e := range eps {
		id, err := endpointID(e.keyNode)
		if err != nil {
			return nil, p.fail(quirks.ErrMalformedSignature, nil, "signature", err)
		}
		es, err := p.endpointSignature(id, e.value)
		if err != nil {
			return nil, err
		}
		sig[id] = es
	}
	return sig, nil
}

func (p *parser) endpointSignature(id uint8, n *yaml.Node) (quirks.EndpointSignature, error) {
	var es quirks.EndpointSignature
	if isNull(n) {
		return es, nil
	}

	fs, err := fields(n)
	if err != nil {
		return es, p.fail(quirks.ErrMalformedSignature, &id, "", err)
	}
	for _, f := range fs {
		switch f.key {
		case "profile_id":
			es.ProfileID, err = uint16Ptr(f.value)
		case "device_type":
			es.DeviceType, err = uint16Ptr(f.value)
		case "input_clusters":
			es.InputClusters, err = clusterIDs(f.value)
		case "output_clusters":
			es.OutputClusters, err = clusterIDs(f.value)
		default:
			err = fmt.Errorf("line %d: unknown key %q", f.line, f.key)
		}
		if err != nil {
			return es, p.fail(quirks.ErrMalformedSignature, &id, f.key, err)
		}
	}
	return es, nil
}

func (p *parser) replacement(n *yaml.Node) (quirks.Replacement, error) {
	var r quirks.Replacement
	if isNull(n) {
		return r, nil
	}

	fs, err := fields(n)
	if err != nil {
		return r, p.fail(quirks.ErrMalformedReplacement, nil, "replacement", err)
	}
	for _, f := range fs {
		switch f.key {
		case "profile_id":
			r.ProfileID, err = uint16Ptr(f.value)
		case "device_type":
			r.DeviceType, err = uint16Ptr(f.value)
		case "endpoints":
			r.Endpoints, err = p.endpoints(f.value)
			if err != nil {
				// Already a ValidationError.
				return r, err
			}
		default:
			err = fmt.Errorf("line %d: unknown key %q", f.line, f.key)
		}
		if err != nil {
			return r, p.fail(quirks.ErrMalformedReplacement, nil, f.key, err)
		}
	}
	return r, nil
}

func (p *parser) endpoints(n *yaml.Node) (map[uint8]quirks.EndpointReplacement, error) {
	out := make(map[uint8]quirks.EndpointReplacement)
	if isNull(n) {
		return out, nil
	}

	eps, err := fields(n)
	if err != nil {
		return nil, p.fail(quirks.ErrMalformedReplacement, nil, "endpoints", err)
	}
	for _, e := range eps {
		id, err := endpointID(e.keyNode)
		if err != nil {
			return nil, p.fail(quirks.ErrMalformedReplacement, nil, "endpoints", err)
		}
		if isNull(e.value) {
			out[id] = quirks.EndpointOverride{}
			continue
		}
		fs, err := fields(e.value)
		if err != nil {
			return nil, p.fail(quirks.ErrMalformedReplacement, &id, "", err)
		}

		var r quirks.EndpointReplacement
		if hasKey(fs, "custom") {
			r, err = p.custom(id, fs)
		} else {
			r, err = p.override(id, fs)
		}
		if err != nil {
			return nil, err
		}
		out[id] = r
	}
	return out, nil
}

func (p *parser) override(id uint8, fs []field) (quirks.EndpointOverride, error) {
	var ov quirks.EndpointOverride
	var err error
	for _, f := range fs {
		switch f.key {
		case "profile_id":
			ov.ProfileID, err = uint16Ptr(f.value)
		case "device_type":
			ov.DeviceType, err = uint16Ptr(f.value)
		case "input_clusters":
			ov.InputClusters, err = p.clusterEntries(f.value)
		case "output_clusters":
			ov.OutputClusters, err = p.clusterEntries(f.value)
		default:
			err = fmt.Errorf("line %d: unknown key %q", f.line, f.key)
		}
		if err != nil {
			return ov, p.fail(quirks.ErrMalformedReplacement, &id, f.key, err)
		}
	}
	return ov, nil
}

func (p *parser) custom(id uint8, fs []field) (quirks.CustomEndpoint, error) {
	var ce quirks.CustomEndpoint
	for _, f := range fs {
		var err error
		switch f.key {
		case "custom":
			fn, ok := p.cat.Endpoint(f.value.Value)
			if f.value.Kind != yaml.ScalarNode || !ok {
				err = fmt.Errorf("line %d: unknown endpoint constructor %q", f.value.Line, f.value.Value)
				break
			}
			ce.New = fn
		case "args":
			if err = f.value.Decode(&ce.Args); err != nil {
				err = fmt.Errorf("line %d: %w", f.value.Line, err)
			}
		default:
			err = fmt.Errorf("line %d: unknown key %q", f.line, f.key)
		}
		if err != nil {
			return ce, p.fail(quirks.ErrMalformedReplacement, &id, f.key, err)
		}
	}
	return ce, nil
}

func (p *parser) clusterEntries(n *yaml.Node) ([]quirks.ClusterEntry, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list", n.Line)
	}

	entries := make([]quirks.ClusterEntry, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind == yaml.ScalarNode {
			v, err := uintValue(item, 0xFFFF)
			if err != nil {
				return nil, err
			}
			entries = append(entries, quirks.ByID(zcl.ClusterID(v)))
			continue
		}

		fs, err := fields(item)
		if err != nil {
			return nil, err
		}
		if len(fs) != 1 || fs[0].key != "type" {
			return nil, fmt.Errorf("line %d: cluster entry must be an id or {type: <name>}", item.Line)
		}
		t, ok := p.cat.Cluster(fs[0].value.Value)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown cluster type %q", fs[0].value.Line, fs[0].value.Value)
		}
		entries = append(entries, quirks.ByType(t))
	}
	return entries, nil
}

type field struct {
	key     string
	line    int
	keyNode *yaml.Node
	value   *yaml.Node
}

// fields returns the key/value pairs of a mapping node in document order.
func fields(n *yaml.Node) ([]field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}

	out := make([]field, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if seen[k.Value] {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = true
		out = append(out, field{key: k.Value, line: k.Line, keyNode: k, value: n.Content[i+1]})
	}
	return out, nil
}

func hasKey(fs []field, key string) bool {
	for _, f := range fs {
		if f.key == key {
			return true
		}
	}
	return false
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func uintValue(n *yaml.Node, max uint64) (uint64, error) {
	var v int64
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		return 0, fmt.Errorf("line %d: %q is not an integer", n.Line, n.Value)
	}
	if v < 0 || uint64(v) > max {
		return 0, fmt.Errorf("line %d: %d out of range 0..%#x", n.Line, v, max)
	}
	return uint64(v), nil
}

func endpointID(n *yaml.Node) (uint8, error) {
	v, err := uintValue(n, 0xFF)
	return uint8(v), err
}

func uint16Ptr(n *yaml.Node) (*uint16, error) {
	v, err := uintValue(n, 0xFFFF)
	if err != nil {
		return nil, err
	}
	return quirks.Uint16(uint16(v)), nil
}

func clusterIDs(n *yaml.Node) ([]zcl.ClusterID, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list", n.Line)
	}

	ids := make([]zcl.ClusterID, 0, len(n.Content))
	for _, item := range n.Content {
		v, err := uintValue(item, 0xFFFF)
		if err != nil {
			return nil, err
		}
		ids = append(ids, zcl.ClusterID(v))
	}
	return ids, nil
}
