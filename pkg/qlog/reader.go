package qlog

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects trace events. Zero fields select everything.
type Filter struct {
	ResolutionID string
	IEEE         string
	Quirk        string
	Category     *Category

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event passes every set criterion.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.ResolutionID != "" && f.ResolutionID != event.ResolutionID,
		f.IEEE != "" && f.IEEE != event.IEEE,
		f.Quirk != "" && f.Quirk != event.Quirk,
		f.Category != nil && *f.Category != event.Category,
		f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

// Reader streams events out of a trace file.
type Reader struct {
	src    io.Closer
	dec    *cbor.Decoder
	filter Filter
}

// NewReader opens the trace file at path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens the trace file at path, yielding only events that
// pass filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{src: f, dec: NewDecoder(f), filter: filter}, nil
}

// Next returns the next selected event, or io.EOF at the end of the file.
// A file cut short mid-event reports io.ErrUnexpectedEOF.
func (r *Reader) Next() (Event, error) {
	var event Event
	for {
		event = Event{}
		if err := r.dec.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.EOF
			}
			return Event{}, err
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Close releases the file.
func (r *Reader) Close() error {
	return r.src.Close()
}
