package quirkfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smdjeff/zigpy/pkg/quirks"
)

// LoadFile loads and parses a quirk file.
func LoadFile(path string, cat *Catalog) ([]*quirks.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defs, err := Parse(data, cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// LoadDir loads every .yaml and .yml file in dir, in file name order.
// Subdirectories are ignored.
func LoadDir(dir string, cat *Catalog) ([]*quirks.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading quirk directory: %w", err)
	}

	var defs []*quirks.Definition
	for _, e := range entries {
		if e.IsDir() || !isQuirkFile(e.Name()) {
			continue
		}
		loaded, err := LoadFile(filepath.Join(dir, e.Name()), cat)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

// RegisterDir loads dir, validates every definition and registers them in
// load order. Nothing is registered if any definition is invalid.
func RegisterDir(reg *quirks.Registry, dir string, cat *Catalog) ([]*quirks.Definition, error) {
	defs, err := LoadDir(dir, cat)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, def := range defs {
		if err := quirks.Validate(def, nil); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, def := range defs {
		reg.Register(def)
	}
	return defs, nil
}

func isQuirkFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
