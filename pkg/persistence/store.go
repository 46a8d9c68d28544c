package persistence

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/quirks"
)

// RecordVersion is the current version of the record file format.
const RecordVersion = 1

const recordExt = ".yaml"

// DeviceRecord is a saved device snapshot.
type DeviceRecord struct {
	// Version is the record file format version.
	Version int `yaml:"version"`

	// SavedAt is when the record was last saved.
	SavedAt time.Time `yaml:"saved_at"`

	// Quirk is the name of the quirk applied to the device, if any.
	Quirk string `yaml:"quirk,omitempty"`

	model.DeviceInfo `yaml:",inline"`
}

// RecordOf describes n, including the applied quirk when n is a quirk
// instance.
func RecordOf(n model.Node) *DeviceRecord {
	rec := &DeviceRecord{DeviceInfo: *model.InfoOf(n)}
	if cd, ok := n.(*quirks.CustomDevice); ok {
		rec.Quirk = cd.Quirk().Name
	}
	return rec
}

// DeviceStore manages device records in a directory.
type DeviceStore struct {
	mu  sync.Mutex
	dir string
}

// NewDeviceStore creates a store rooted at dir. The directory is created on
// the first Save.
func NewDeviceStore(dir string) *DeviceStore {
	return &DeviceStore{dir: dir}
}

// Path returns the record file of the device with the given address.
func (s *DeviceStore) Path(ieee model.EUI64) string {
	return filepath.Join(s.dir, hex.EncodeToString(ieee[:])+recordExt)
}

// Save persists a record, replacing any previous record of the device.
func (s *DeviceStore) Save(rec *DeviceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	rec.Version = RecordVersion
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding device record: %w", err)
	}
	return os.WriteFile(s.Path(rec.IEEE), data, 0644)
}

// Load reads the record of a device.
// Returns nil, nil if the device has no record.
func (s *DeviceStore) Load(ieee model.EUI64) (*DeviceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(ieee))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := &DeviceRecord{}
	if err := yaml.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decoding device record %s: %w", ieee, err)
	}
	return rec, nil
}

// List returns the addresses of all stored devices, in ascending order.
func (s *DeviceStore) List() ([]model.EUI64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []model.EUI64
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), recordExt)
		if e.IsDir() || !ok {
			continue
		}
		ieee, err := model.ParseEUI64(name)
		if err != nil {
			continue
		}
		out = append(out, ieee)
	}
	slices.SortFunc(out, func(a, b model.EUI64) int {
		return strings.Compare(a.String(), b.String())
	})
	return out, nil
}

// Clear removes the record of a device.
func (s *DeviceStore) Clear(ieee model.EUI64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(ieee))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
