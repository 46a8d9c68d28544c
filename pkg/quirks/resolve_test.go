package quirks_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/qlog"
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

type captureTrace struct {
	mu     sync.Mutex
	events []qlog.Event
}

func (c *captureTrace) Log(e qlog.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureTrace) categories() []qlog.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	cats := make([]qlog.Category, len(c.events))
	for i, e := range c.events {
		cats[i] = e.Category
	}
	return cats
}

func TestGetDeviceIncremental(t *testing.T) {
	dev := realDevice(t)

	def := &quirks.Definition{Name: "test-device", Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(1)}}}
	reg := quirks.NewRegistry()
	reg.Register(def)

	get := func() model.Node {
		t.Helper()
		got, err := quirks.Get(dev, reg)
		require.NoError(t, err)
		return got
	}

	assert.Same(t, dev, get())

	def.Signature[1] = quirks.EndpointSignature{ProfileID: quirks.Uint16(255), DeviceType: quirks.Uint16(1)}
	assert.Same(t, dev, get())

	sig := def.Signature[1]
	sig.DeviceType = quirks.Uint16(255)
	sig.InputClusters = []zcl.ClusterID{3, 4}
	def.Signature[1] = sig
	assert.Same(t, dev, get())

	sig.InputClusters = []zcl.ClusterID{3}
	sig.OutputClusters = []zcl.ClusterID{7}
	def.Signature[1] = sig
	assert.Same(t, dev, get())

	sig.OutputClusters = []zcl.ClusterID{6}
	def.Signature[1] = sig
	got := get()
	require.IsType(t, &quirks.CustomDevice{}, got)
	assert.Same(t, def, got.(*quirks.CustomDevice).Quirk())
	assert.Same(t, dev, got.(*quirks.CustomDevice).Replaces())
}

func TestGetDeviceEmptyRegistry(t *testing.T) {
	dev := realDevice(t)
	got, err := quirks.Get(dev, quirks.NewRegistry())
	require.NoError(t, err)
	assert.Same(t, dev, got)
}

func TestGetDeviceNilRegistryUsesDefault(t *testing.T) {
	dev := realDevice(t)
	def := quirks.Register(&quirks.Definition{
		Name:      "default-only",
		Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(255), DeviceType: quirks.Uint16(255)}},
	})
	t.Cleanup(func() { quirks.DefaultRegistry.Pop() })

	got, err := quirks.Get(dev, nil)
	require.NoError(t, err)
	require.IsType(t, &quirks.CustomDevice{}, got)
	assert.Same(t, def, got.(*quirks.CustomDevice).Quirk())
}

func TestFirstMatchWins(t *testing.T) {
	dev := realDevice(t)

	general := &quirks.Definition{Name: "general", Signature: quirks.Signature{}}
	specific := &quirks.Definition{Name: "specific", Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(255)}}}

	t.Run("GeneralFirstPreemptsSpecific", func(t *testing.T) {
		reg := quirks.NewRegistry()
		reg.Register(general)
		reg.Register(specific)

		got, err := quirks.Get(dev, reg)
		require.NoError(t, err)
		assert.Same(t, general, got.(*quirks.CustomDevice).Quirk())
	})

	t.Run("SpecificFirst", func(t *testing.T) {
		reg := quirks.NewRegistry()
		reg.Register(specific)
		reg.Register(general)

		got, err := quirks.Get(dev, reg)
		require.NoError(t, err)
		assert.Same(t, specific, got.(*quirks.CustomDevice).Quirk())
	})
}

func TestLaterMatchesNotConsulted(t *testing.T) {
	dev := realDevice(t)

	reg := quirks.NewRegistry()
	broken := &quirks.Definition{
		Name: "broken",
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{9: quirks.EndpointOverride{}},
		},
	}
	reg.Register(&quirks.Definition{Name: "first"})
	reg.Register(broken)

	got, err := quirks.Get(dev, reg)
	require.NoError(t, err)
	assert.Equal(t, "first", got.(*quirks.CustomDevice).Quirk().Name)
}

func TestResolveConstructionErrorPropagates(t *testing.T) {
	dev := realDevice(t)
	trace := &captureTrace{}

	reg := quirks.NewRegistry()
	reg.Register(&quirks.Definition{
		Name: "broken",
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{9: quirks.EndpointOverride{}},
		},
	})

	got, err := quirks.NewResolver(quirks.ResolverConfig{Registry: reg, Trace: trace}).Resolve(dev)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, quirks.ErrEndpointMissing)

	var ce *quirks.ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "broken", ce.Quirk)
	assert.Equal(t, uint8(9), ce.Endpoint)

	assert.Equal(t, []qlog.Category{qlog.CategoryMatch, qlog.CategoryError}, trace.categories())
	last := trace.events[1]
	require.NotNil(t, last.Endpoint)
	assert.Equal(t, uint8(9), *last.Endpoint)
	assert.Contains(t, last.Error, "endpoint missing")
}

func TestResolveTrace(t *testing.T) {
	dev := realDevice(t)
	trace := &captureTrace{}

	reg := quirks.NewRegistry()
	reg.Register(&quirks.Definition{Name: "other", Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(0x0104)}}})
	reg.Register(&quirks.Definition{Name: "mine", Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(255)}}})

	r := quirks.NewResolver(quirks.ResolverConfig{Registry: reg, Trace: trace})
	_, err := r.Resolve(dev)
	require.NoError(t, err)

	assert.Equal(t, []qlog.Category{qlog.CategoryCandidate, qlog.CategoryMatch, qlog.CategoryBuilt}, trace.categories())

	ids := map[string]bool{}
	for _, e := range trace.events {
		ids[e.ResolutionID] = true
		assert.Equal(t, testIEEE.String(), e.IEEE)
		assert.Equal(t, uint16(0x1234), e.NWK)
		assert.False(t, e.Timestamp.IsZero())
	}
	assert.Len(t, ids, 1)

	assert.Equal(t, "other", trace.events[0].Quirk)
	assert.Equal(t, "endpoint 1: profile_id 0x00FF != 0x0104", trace.events[0].Detail)
	assert.Equal(t, "mine", trace.events[1].Quirk)
	assert.Equal(t, 1, trace.events[1].Position)
	assert.Contains(t, trace.events[2].Detail, "1:*model.StandardEndpoint")

	// A second resolution gets its own id.
	reg.Reset()
	_, err = r.Resolve(dev)
	require.NoError(t, err)
	last := trace.events[len(trace.events)-1]
	assert.Equal(t, qlog.CategoryNoMatch, last.Category)
	assert.NotContains(t, ids, last.ResolutionID)
}

func TestResolveNoMatchLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dev := realDevice(t)
	r := quirks.NewResolver(quirks.ResolverConfig{Registry: quirks.NewRegistry(), Logger: logger})

	got, err := r.Resolve(dev)
	require.NoError(t, err)
	assert.Same(t, dev, got)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "no quirk matched")
	assert.NotContains(t, buf.String(), "level=ERROR")
	assert.NotContains(t, buf.String(), "level=WARN")
}
