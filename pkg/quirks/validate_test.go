package quirks_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

func validationErrors(t *testing.T, err error) []*quirks.ValidationError {
	t.Helper()

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected joined errors, got %T", err)

	var out []*quirks.ValidationError
	for _, e := range joined.Unwrap() {
		var ve *quirks.ValidationError
		require.ErrorAs(t, e, &ve)
		out = append(out, ve)
	}
	return out
}

func TestValidateValid(t *testing.T) {
	def := &quirks.Definition{
		Name:      "valid",
		Signature: quirks.Signature{1: {ProfileID: quirks.Uint16(0x0104)}},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.EndpointOverride{
					InputClusters:  []quirks.ClusterEntry{quirks.ByID(zcl.Basic), quirks.ByType(myClusterType)},
					OutputClusters: []quirks.ClusterEntry{quirks.ByID(0x8888)},
				},
				2: quirks.EndpointOverride{
					ProfileID:  quirks.Uint16(0x0104),
					DeviceType: quirks.Uint16(0x0100),
				},
				3: quirks.CustomEndpoint{New: func(d *quirks.CustomDevice, id uint8, _ model.Endpoint, _ ...any) (model.Endpoint, error) {
					return model.NewEndpoint(d.Device, id), nil
				}},
			},
		},
	}
	assert.NoError(t, quirks.Validate(def, nil))
}

func TestValidateDefects(t *testing.T) {
	def := &quirks.Definition{
		Signature: quirks.Signature{1: {}},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.EndpointOverride{
					InputClusters:  []quirks.ClusterEntry{quirks.ByID(zcl.Basic), quirks.ByID(zcl.Basic)},
					OutputClusters: []quirks.ClusterEntry{quirks.ByID(0xFC57), quirks.ByType(zcl.Type{ID: 0x8889})},
				},
				2: quirks.EndpointOverride{ProfileID: quirks.Uint16(0x0104)},
				3: quirks.CustomEndpoint{},
			},
		},
	}

	err := quirks.Validate(def, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, quirks.ErrMalformedReplacement)
	assert.ErrorIs(t, err, quirks.ErrNoConstructor)

	errs := validationErrors(t, err)
	require.Len(t, errs, 6)

	assert.Equal(t, "name", errs[0].Field)
	assert.False(t, errs[0].HasEndpoint)
	assert.ErrorIs(t, errs[0], quirks.ErrUnnamedQuirk)
	assert.NotErrorIs(t, errs[0], quirks.ErrMalformedReplacement)

	assert.Equal(t, uint8(1), errs[1].Endpoint)
	assert.Equal(t, "input_clusters", errs[1].Field)
	assert.Contains(t, errs[1].Detail, "duplicate cluster 0x0000")

	assert.Equal(t, "output_clusters", errs[2].Field)
	assert.Contains(t, errs[2].Detail, "0xFC57 is not registered")

	assert.Equal(t, "output_clusters", errs[3].Field)
	assert.Contains(t, errs[3].Detail, "needs a name and constructor")

	assert.Equal(t, uint8(2), errs[4].Endpoint)
	assert.Equal(t, "endpoints", errs[4].Field)

	assert.Equal(t, uint8(3), errs[5].Endpoint)
	assert.True(t, errors.Is(errs[5], quirks.ErrNoConstructor))
}

func TestValidateCustomClusterRegistry(t *testing.T) {
	clusters := zcl.NewRegistry()
	clusters.MustRegister(myClusterType)

	def := &quirks.Definition{
		Name:      "registered",
		Signature: quirks.Signature{1: {}},
		Replacement: quirks.Replacement{
			Endpoints: map[uint8]quirks.EndpointReplacement{
				1: quirks.EndpointOverride{InputClusters: []quirks.ClusterEntry{quirks.ByID(0x8888)}},
			},
		},
	}

	assert.NoError(t, quirks.Validate(def, clusters))
	assert.Error(t, quirks.Validate(def, nil))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &quirks.ValidationError{
		Quirk:       "q",
		Endpoint:    2,
		HasEndpoint: true,
		Field:       "input_clusters",
		Detail:      "duplicate cluster 0x0006",
		Err:         quirks.ErrMalformedReplacement,
	}
	assert.Equal(t, `quirk "q" endpoint 2 field "input_clusters": quirks: malformed replacement: duplicate cluster 0x0006`, err.Error())
}

func TestRegistryValidate(t *testing.T) {
	r := quirks.NewRegistry()
	r.Register(&quirks.Definition{Name: "ok"})
	assert.NoError(t, r.Validate(nil))

	r.Register(&quirks.Definition{})
	assert.ErrorIs(t, r.Validate(nil), quirks.ErrMalformedReplacement)
}
