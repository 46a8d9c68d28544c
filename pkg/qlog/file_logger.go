package qlog

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger writes trace events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	mu      sync.Mutex
	path    string
	out     io.WriteCloser
	encoder *cbor.Encoder
	written int
	err     error
	closed  bool
}

// NewFileLogger creates a FileLogger appending to the file at path.
// The file is created with permissions 0644 if it doesn't exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := NewStreamLogger(f)
	l.path = path
	return l, nil
}

// NewStreamLogger creates a FileLogger writing to w. Close closes w.
func NewStreamLogger(w io.WriteCloser) *FileLogger {
	return &FileLogger{
		out:     w,
		encoder: NewEncoder(w),
	}
}

// Log writes an event.
// Tracing never fails the resolution it describes, so the first write error
// is kept for Err and later events are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.err = err
		return
	}
	l.written++
}

// Path returns the file path, or "" for stream loggers.
func (l *FileLogger) Path() string {
	return l.path
}

// Written returns the number of events written.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first write error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the underlying writer.
// It is safe to call Close multiple times.
// After Close is called, subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.out.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
