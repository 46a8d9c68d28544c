package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smdjeff/zigpy/pkg/qlog"
)

type traceFlags struct {
	resolution string
	ieee       string
	quirk      string
	category   string
}

func (f *traceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.resolution, "resolution", "", "filter by resolution id")
	cmd.Flags().StringVar(&f.ieee, "ieee", "", "filter by device IEEE address")
	cmd.Flags().StringVar(&f.quirk, "quirk", "", "filter by quirk name")
	cmd.Flags().StringVar(&f.category, "category", "", "filter by category (candidate, match, no-match, built, error)")
}

func (f *traceFlags) filter() (qlog.Filter, error) {
	filter := qlog.Filter{
		ResolutionID: f.resolution,
		IEEE:         f.ieee,
		Quirk:        f.quirk,
	}
	if f.category != "" {
		c, err := qlog.ParseCategory(f.category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

func traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "View, export or summarize resolution trace files",
	}

	var viewFlags traceFlags
	view := &cobra.Command{
		Use:   "view <file.qlog>",
		Short: "View a trace file in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := viewFlags.filter()
			if err != nil {
				return err
			}
			return RunTraceView(args[0], filter, cmd.OutOrStdout())
		},
	}
	viewFlags.register(view)

	var exportFlags traceFlags
	var format, output string
	export := &cobra.Command{
		Use:   "export <file.qlog>",
		Short: "Export a trace file to JSONL or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := exportFlags.filter()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return RunTraceExport(args[0], filter, format, w)
		},
	}
	exportFlags.register(export)
	export.Flags().StringVar(&format, "format", "jsonl", "output format (jsonl, csv)")
	export.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	stats := &cobra.Command{
		Use:   "stats <file.qlog>",
		Short: "Show statistics about a trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTraceStats(args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(view, export, stats)
	return cmd
}

// RunTraceView writes the matching events of a trace file to w.
func RunTraceView(path string, filter qlog.Filter, w io.Writer) error {
	reader, err := qlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
		count++
	}

	fmt.Fprintf(w, "%d events\n", count)
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event qlog.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [res:%s] %s 0x%04X %s", ts, shortenID(event.ResolutionID), event.IEEE, event.NWK, event.Category)
	if event.Quirk != "" {
		fmt.Fprintf(w, " %s (#%d)", event.Quirk, event.Position)
	}
	fmt.Fprintln(w)

	if event.Endpoint != nil {
		fmt.Fprintf(w, "  Endpoint: %d\n", *event.Endpoint)
	}
	if event.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", event.Detail)
	}
	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}
}

// shortenID returns the first 8 characters of a resolution id.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// RunTraceExport exports the matching events of a trace file in the given
// format.
func RunTraceExport(path string, filter qlog.Filter, format string, w io.Writer) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := qlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *qlog.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *qlog.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "resolution_id", "ieee", "nwk", "category", "quirk", "position", "endpoint", "detail", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		endpoint := ""
		if event.Endpoint != nil {
			endpoint = strconv.Itoa(int(*event.Endpoint))
		}
		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.ResolutionID,
			event.IEEE,
			fmt.Sprintf("0x%04X", event.NWK),
			event.Category.String(),
			event.Quirk,
			strconv.Itoa(event.Position),
			endpoint,
			event.Detail,
			event.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
