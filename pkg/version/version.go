// Package version provides quirk file format version parsing and
// compatibility checks.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the quirk file format implemented by this library.
const Current = "1.0"

// ErrIncompatible is returned by Check for a different major version.
var ErrIncompatible = errors.New("incompatible format version")

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minor, ".") {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	maj, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	mnr, err := strconv.ParseUint(minor, 10, 16)
	if err != nil {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(maj), Minor: uint16(mnr)}, nil
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v FormatVersion) Compatible(other FormatVersion) bool {
	return v.Major == other.Major
}

// Check parses s and verifies it is compatible with Current. Newer minor
// versions are accepted; their unknown keys are still rejected by the
// parser.
func Check(s string) (FormatVersion, error) {
	v, err := Parse(s)
	if err != nil {
		return v, err
	}
	current, _ := Parse(Current)
	if !current.Compatible(v) {
		return v, fmt.Errorf("%w: %s (supported: %d.x)", ErrIncompatible, v, current.Major)
	}
	return v, nil
}
