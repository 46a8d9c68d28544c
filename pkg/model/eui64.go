package model

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEUI64 is returned when parsing a malformed IEEE address.
var ErrInvalidEUI64 = errors.New("invalid EUI64")

// EUI64 is a device's stable IEEE address, most significant byte first.
type EUI64 [8]byte

// ParseEUI64 parses the colon separated form, e.g. "00:15:8d:00:01:02:03:04".
// The bare 16 hex digit form is accepted too.
func ParseEUI64(s string) (EUI64, error) {
	var e EUI64
	raw := strings.ReplaceAll(s, ":", "")
	if len(raw) != 16 {
		return e, fmt.Errorf("%q: %w", s, ErrInvalidEUI64)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return e, fmt.Errorf("%q: %w", s, ErrInvalidEUI64)
	}
	copy(e[:], b)
	return e, nil
}

// MustParseEUI64 is like ParseEUI64 but panics on error.
func MustParseEUI64(s string) EUI64 {
	e, err := ParseEUI64(s)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the colon separated lower-case form.
func (e EUI64) String() string {
	var sb strings.Builder
	for i, b := range e {
		if i > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (e EUI64) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EUI64) UnmarshalText(text []byte) error {
	parsed, err := ParseEUI64(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
