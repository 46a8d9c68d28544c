package version

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0",
		"1.x",
		"-1.0",
		".1",
		"1.",
		"70000.0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestFormatVersion_String(t *testing.T) {
	v := FormatVersion{Major: 1, Minor: 2}
	if got := v.String(); got != "1.2" {
		t.Errorf("String() = %q, want %q", got, "1.2")
	}
}

func TestCheck(t *testing.T) {
	if _, err := Check(Current); err != nil {
		t.Errorf("Check(Current) error: %v", err)
	}
	if v, err := Check("1.7"); err != nil || v.Minor != 7 {
		t.Errorf("Check(1.7) = %v, %v; want newer minor accepted", v, err)
	}
	if _, err := Check("2.0"); !errors.Is(err, ErrIncompatible) {
		t.Errorf("Check(2.0) error = %v, want ErrIncompatible", err)
	}
	if _, err := Check("one"); err == nil || errors.Is(err, ErrIncompatible) {
		t.Errorf("Check(one) error = %v, want parse error", err)
	}
}
