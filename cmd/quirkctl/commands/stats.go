package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/smdjeff/zigpy/pkg/qlog"
)

// TraceStats summarizes a trace file.
type TraceStats struct {
	Events      int
	Resolutions int
	Devices     int
	ByCategory  map[qlog.Category]int
	Matches     map[string]int
}

// CollectTraceStats reads a trace file and summarizes it.
func CollectTraceStats(path string) (*TraceStats, error) {
	reader, err := qlog.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &TraceStats{
		ByCategory: make(map[qlog.Category]int),
		Matches:    make(map[string]int),
	}
	resolutions := make(map[string]bool)
	devices := make(map[string]bool)

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.Events++
		stats.ByCategory[event.Category]++
		resolutions[event.ResolutionID] = true
		devices[event.IEEE] = true
		if event.Category == qlog.CategoryMatch {
			stats.Matches[event.Quirk]++
		}
	}

	stats.Resolutions = len(resolutions)
	stats.Devices = len(devices)
	return stats, nil
}

// RunTraceStats writes a summary of a trace file to w.
func RunTraceStats(path string, w io.Writer) error {
	stats, err := CollectTraceStats(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events:      %d\n", stats.Events)
	fmt.Fprintf(w, "Resolutions: %d\n", stats.Resolutions)
	fmt.Fprintf(w, "Devices:     %d\n", stats.Devices)

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range []qlog.Category{qlog.CategoryCandidate, qlog.CategoryMatch, qlog.CategoryNoMatch, qlog.CategoryBuilt, qlog.CategoryError} {
		fmt.Fprintf(w, "  %-10s %d\n", c, stats.ByCategory[c])
	}

	if len(stats.Matches) > 0 {
		fmt.Fprintln(w, "\nMatched quirks:")
		names := make([]string, 0, len(stats.Matches))
		for name := range stats.Matches {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-24s %d\n", name, stats.Matches[name])
		}
	}
	return nil
}
