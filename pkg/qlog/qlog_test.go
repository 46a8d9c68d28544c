package qlog

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func sampleEvents(ts time.Time) []Event {
	ep := uint8(1)
	return []Event{
		{Timestamp: ts, ResolutionID: "r1", IEEE: "00:15:8d:00:01:02:03:04", NWK: 0x1a2b,
			Category: CategoryCandidate, Quirk: "ikea-remote", Detail: "endpoint 1: profile_id 0x0104 != 0xc05e"},
		{Timestamp: ts.Add(time.Millisecond), ResolutionID: "r1", IEEE: "00:15:8d:00:01:02:03:04", NWK: 0x1a2b,
			Category: CategoryMatch, Quirk: "lumi-weather", Position: 1},
		{Timestamp: ts.Add(2 * time.Millisecond), ResolutionID: "r1", IEEE: "00:15:8d:00:01:02:03:04", NWK: 0x1a2b,
			Category: CategoryBuilt, Quirk: "lumi-weather", Position: 1, Endpoint: &ep},
		{Timestamp: ts.Add(time.Second), ResolutionID: "r2", IEEE: "00:0b:57:ff:fe:00:00:01", NWK: 0x0001,
			Category: CategoryNoMatch},
	}
}

func TestCategoryNames(t *testing.T) {
	for _, c := range []Category{CategoryCandidate, CategoryMatch, CategoryNoMatch, CategoryBuilt, CategoryError} {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseCategory("no-match")
	require.NoError(t, err)
	assert.Equal(t, CategoryNoMatch, c)

	_, err = ParseCategory("bogus")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", Category(99).String())

	text, err := CategoryBuilt.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "BUILT", string(text))
}

func TestEncodeDecodeEvent(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	for _, e := range sampleEvents(ts) {
		data, err := EncodeEvent(e)
		require.NoError(t, err)

		got, err := DecodeEvent(data)
		require.NoError(t, err)
		assert.True(t, e.Timestamp.Equal(got.Timestamp))
		got.Timestamp = e.Timestamp
		assert.Equal(t, e, got)
	}

	_, err := DecodeEvent([]byte{0xff})
	assert.Error(t, err)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

func TestMultiLogger(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{ResolutionID: "r1"})
	m.Log(Event{ResolutionID: "r2"})

	assert.Len(t, a.events, 2)
	assert.Len(t, b.events, 2)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	ts := time.Now()
	for _, e := range sampleEvents(ts) {
		adapter.Log(e)
	}
	adapter.Log(Event{Timestamp: ts, ResolutionID: "r3", Category: CategoryError, Quirk: "broken", Error: "endpoint 2 missing"})

	out := buf.String()
	assert.Contains(t, out, "quirk=lumi-weather")
	assert.Contains(t, out, "category=NO_MATCH")
	assert.Contains(t, out, "endpoint=1")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `error="endpoint 2 missing"`)
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.qlog")
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	assert.Equal(t, path, logger.Path())

	events := sampleEvents(ts)
	for _, e := range events {
		logger.Log(e)
	}
	assert.Equal(t, len(events), logger.Written())
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	// Ignored after close.
	logger.Log(events[0])
	assert.Equal(t, len(events), logger.Written())

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var got []Event
	for {
		e, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, e)
	}
	require.Len(t, got, len(events))
	assert.Equal(t, "lumi-weather", got[1].Quirk)
	require.NotNil(t, got[2].Endpoint)
	assert.Equal(t, uint8(1), *got[2].Endpoint)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.qlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		require.NoError(t, err)
		logger.Log(Event{ResolutionID: "r", Timestamp: time.Now()})
		require.NoError(t, logger.Close())
	}

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReaderTruncatedFile(t *testing.T) {
	data, err := EncodeEvent(Event{ResolutionID: "r", Quirk: "lumi-weather"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trace.qlog")
	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0o644))

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	assert.Empty(t, events)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }
func (failingWriter) Close() error              { return nil }

func TestStreamLoggerKeepsFirstError(t *testing.T) {
	logger := NewStreamLogger(failingWriter{})
	logger.Log(Event{ResolutionID: "r"})
	logger.Log(Event{ResolutionID: "r"})

	assert.ErrorIs(t, logger.Err(), os.ErrClosed)
	assert.Equal(t, 0, logger.Written())
	assert.Equal(t, "", logger.Path())
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.qlog")
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range sampleEvents(ts) {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())

	match := CategoryMatch
	end := ts.Add(500 * time.Millisecond)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"All", Filter{}, 4},
		{"Resolution", Filter{ResolutionID: "r2"}, 1},
		{"IEEE", Filter{IEEE: "00:15:8d:00:01:02:03:04"}, 3},
		{"Quirk", Filter{Quirk: "lumi-weather"}, 2},
		{"Category", Filter{Category: &match}, 1},
		{"TimeEnd", Filter{TimeEnd: &end}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			require.NoError(t, err)
			defer reader.Close()

			n := 0
			for {
				if _, err := reader.Next(); err != nil {
					require.ErrorIs(t, err, io.EOF)
					break
				}
				n++
			}
			assert.Equal(t, tt.want, n)
		})
	}
}
