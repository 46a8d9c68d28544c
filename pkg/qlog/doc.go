// Package qlog records what the quirk resolver decided and why.
//
// This package defines the Logger interface and the Event type for tracing
// quirk resolution. It is separate from operational logging (slog): a trace
// is a complete machine-readable record of every candidate quirk checked for
// a device, the match (if any) and the outcome of construction.
//
// # Basic Usage
//
//	// For development: trace to console via slog
//	cfg.Trace = qlog.NewSlogAdapter(slog.Default())
//
//	// For analysis: write to a CBOR file
//	cfg.Trace, _ = qlog.NewFileLogger("/var/log/zigpy/resolve.qlog")
//
//	// Both
//	cfg.Trace = qlog.NewMultiLogger(console, file)
//
// # Event Categories
//
// Every call to the resolver produces events sharing one ResolutionID:
//   - Candidate: a registered quirk was checked and did not match
//   - Match: the first matching quirk
//   - NoMatch: nothing matched, the original device is kept
//   - Built: the replacement device was constructed
//   - Error: construction failed
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys
// (.qlog extension). The quirkctl trace command views and exports them.
package qlog
