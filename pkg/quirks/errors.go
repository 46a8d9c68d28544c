package quirks

import (
	"errors"
	"fmt"
)

// Quirk errors.
var (
	// ErrUnnamedQuirk is returned when a definition has no name.
	ErrUnnamedQuirk = errors.New("quirks: definition has no name")

	// ErrMalformedSignature is returned when a signature uses an unknown
	// field or an out of range value.
	ErrMalformedSignature = errors.New("quirks: malformed signature")

	// ErrMalformedReplacement is returned when a replacement cannot be built
	// from its own data and the signature.
	ErrMalformedReplacement = errors.New("quirks: malformed replacement")

	// ErrEndpointMissing is returned when a replacement names an endpoint the
	// device does not have.
	ErrEndpointMissing = errors.New("quirks: endpoint missing on device")

	// ErrNoConstructor is returned when a custom endpoint has no constructor.
	ErrNoConstructor = errors.New("quirks: custom endpoint has no constructor")

	// ErrEndpointIDMismatch is returned when a custom endpoint constructor
	// returns an endpoint with a different id.
	ErrEndpointIDMismatch = errors.New("quirks: custom endpoint reports a different id")
)

// ValidationError reports one authoring defect in a quirk definition.
type ValidationError struct {
	Quirk string

	// Endpoint is the endpoint concerned; HasEndpoint is false for
	// device-level defects.
	Endpoint    uint8
	HasEndpoint bool

	Field  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("quirk %q", e.Quirk)
	if e.HasEndpoint {
		msg += fmt.Sprintf(" endpoint %d", e.Endpoint)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConstructionError reports a failure to build a quirk for a device.
type ConstructionError struct {
	Quirk    string
	Endpoint uint8
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("building quirk %q endpoint %d: %v", e.Quirk, e.Endpoint, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
