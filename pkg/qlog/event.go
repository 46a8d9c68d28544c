package qlog

import (
	"fmt"
	"strings"
	"time"
)

// Event is one step of a quirk resolution.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ResolutionID groups the events of one resolution (UUID).
	ResolutionID string `cbor:"2,keyasint"`

	// IEEE is the device's IEEE address in colon form.
	IEEE string `cbor:"3,keyasint"`

	// NWK is the device's network address.
	NWK uint16 `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Quirk is the quirk name, if the event concerns one.
	Quirk string `cbor:"6,keyasint,omitempty"`

	// Position is the quirk's index in registration order.
	Position int `cbor:"7,keyasint,omitempty"`

	// Endpoint is the endpoint the event refers to, if any.
	Endpoint *uint8 `cbor:"8,keyasint,omitempty"`

	// Detail is a human-readable explanation, e.g. a mismatch reason.
	Detail string `cbor:"9,keyasint,omitempty"`

	// Error is set for CategoryError events.
	Error string `cbor:"10,keyasint,omitempty"`
}

// Category classifies trace events.
type Category uint8

const (
	// CategoryCandidate indicates a quirk was checked and did not match.
	CategoryCandidate Category = 0
	// CategoryMatch indicates the quirk that matched.
	CategoryMatch Category = 1
	// CategoryNoMatch indicates that no quirk matched.
	CategoryNoMatch Category = 2
	// CategoryBuilt indicates the replacement device was constructed.
	CategoryBuilt Category = 3
	// CategoryError indicates construction failed.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCandidate:
		return "CANDIDATE"
	case CategoryMatch:
		return "MATCH"
	case CategoryNoMatch:
		return "NO_MATCH"
	case CategoryBuilt:
		return "BUILT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory parses a category name, case-insensitively.
// "no-match" and "no_match" are both accepted.
func ParseCategory(s string) (Category, error) {
	switch strings.ReplaceAll(strings.ToUpper(s), "-", "_") {
	case "CANDIDATE":
		return CategoryCandidate, nil
	case "MATCH":
		return CategoryMatch, nil
	case "NO_MATCH", "NOMATCH":
		return CategoryNoMatch, nil
	case "BUILT":
		return CategoryBuilt, nil
	case "ERROR":
		return CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s", s)
	}
}
