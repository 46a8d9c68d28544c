// Command quirkctl checks quirk definitions and resolves device snapshots
// against them.
//
// Usage:
//
//	quirkctl <command> [flags]
//
// Commands:
//
//	validate  Validate quirk files and the built-in quirks
//	resolve   Resolve a device snapshot and print the resulting device
//	trace     View, export or summarize resolution trace files
//
// Examples:
//
//	# Validate a quirk directory together with the built-in quirks
//	quirkctl validate --builtin ./quirks
//
//	# Resolve a device snapshot and append the trace to a file
//	quirkctl resolve --quirks ./quirks --trace resolve.qlog device.yaml
//
//	# Show only matches from a trace file
//	quirkctl trace view --category match resolve.qlog
//
//	# Export a trace file to JSONL
//	quirkctl trace export --format jsonl resolve.qlog
//
// Defaults for --quirks, --log-level and --log-format are read from
// QUIRKCTL_QUIRKS, QUIRKCTL_LOG_LEVEL and QUIRKCTL_LOG_FORMAT, optionally set
// in a .env file.
package main

import (
	"os"

	"github.com/smdjeff/zigpy/cmd/quirkctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
