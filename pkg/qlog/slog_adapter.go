package qlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see resolution steps in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level, or Warn level for
// errors.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("resolution_id", event.ResolutionID),
		slog.String("ieee", event.IEEE),
		slog.Uint64("nwk", uint64(event.NWK)),
		slog.String("category", event.Category.String()),
	}

	if event.Quirk != "" {
		attrs = append(attrs,
			slog.String("quirk", event.Quirk),
			slog.Int("position", event.Position),
		)
	}
	if event.Endpoint != nil {
		attrs = append(attrs, slog.Uint64("endpoint", uint64(*event.Endpoint)))
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}

	level := slog.LevelDebug
	if event.Category == CategoryError {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), level, "quirk resolution", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
