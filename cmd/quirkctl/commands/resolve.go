package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/persistence"
	"github.com/smdjeff/zigpy/pkg/qlog"
	"github.com/smdjeff/zigpy/pkg/quirks"
	"github.com/smdjeff/zigpy/pkg/zcl"
)

// ResolveOptions configures RunResolve.
type ResolveOptions struct {
	// DevicePath is a device snapshot, YAML or CBOR (.cbor).
	DevicePath string

	// QuirkDir holds quirk files registered before the built-in quirks.
	QuirkDir string

	// Builtin registers the built-in quirks.
	Builtin bool

	// TracePath, if set, receives the resolution trace.
	TracePath string

	// SaveDir, if set, receives a record of the resolved device.
	SaveDir string

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

func resolveCmd() *cobra.Command {
	opts := ResolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <device.yaml|device.cbor>",
		Short: "Resolve a device snapshot and print the resulting device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DevicePath = args[0]
			opts.QuirkDir = cfg.QuirkDir
			opts.Logger = logger
			return RunResolve(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Builtin, "builtin", true, "register the built-in quirks")
	cmd.Flags().StringVar(&opts.TracePath, "trace", "", "append resolution trace events to this file")
	cmd.Flags().StringVar(&opts.SaveDir, "save-dir", "", "save a record of the resolved device in this directory")
	return cmd
}

// RunResolve resolves a device snapshot and writes the resulting endpoint
// graph to w.
func RunResolve(w io.Writer, opts ResolveOptions) error {
	dev, err := LoadDevice(opts.DevicePath)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(opts.QuirkDir, opts.Builtin, opts.Logger)
	if err != nil {
		return err
	}

	var trace qlog.Logger
	if opts.TracePath != "" {
		fl, err := qlog.NewFileLogger(opts.TracePath)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer fl.Close()
		trace = fl
	}
	if opts.Logger != nil {
		trace = qlog.NewMultiLogger(trace, qlog.NewSlogAdapter(opts.Logger))
	}

	r := quirks.NewResolver(quirks.ResolverConfig{
		Registry: reg,
		Logger:   opts.Logger,
		Trace:    trace,
	})
	node, err := r.Resolve(dev)
	if err != nil {
		return err
	}

	printNode(w, node)

	if opts.SaveDir != "" {
		store := persistence.NewDeviceStore(opts.SaveDir)
		if err := store.Save(persistence.RecordOf(node)); err != nil {
			return fmt.Errorf("saving device record: %w", err)
		}
		fmt.Fprintf(w, "saved  %s\n", store.Path(node.IEEE()))
	}
	return nil
}

// LoadDevice reads a device snapshot. Files ending in .cbor are decoded as
// CBOR, everything else as YAML.
func LoadDevice(path string) (*model.Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading device snapshot: %w", err)
	}

	var info *model.DeviceInfo
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		info, err = model.DecodeInfo(data)
		if err != nil {
			return nil, err
		}
	} else {
		info = &model.DeviceInfo{}
		if err := yaml.Unmarshal(data, info); err != nil {
			return nil, fmt.Errorf("parsing device snapshot: %w", err)
		}
	}
	return model.FromInfo(info)
}

func printNode(w io.Writer, n model.Node) {
	fmt.Fprintf(w, "device %s nwk 0x%04X\n", n.IEEE(), n.NWK())
	if cd, ok := n.(*quirks.CustomDevice); ok {
		fmt.Fprintf(w, "quirk  %s\n", cd.Quirk().Name)
	} else {
		fmt.Fprintln(w, "quirk  none")
	}

	for _, ep := range n.Endpoints() {
		fmt.Fprintf(w, "endpoint %d %T profile 0x%04X device_type 0x%04X\n",
			ep.ID(), ep, ep.ProfileID(), ep.DeviceType())
		printClusters(w, "in ", ep.InClusters())
		printClusters(w, "out", ep.OutClusters())
	}
}

func printClusters(w io.Writer, dir string, clusters map[zcl.ClusterID]zcl.Cluster) {
	ids := make([]zcl.ClusterID, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		c := clusters[id]
		fmt.Fprintf(w, "  %s %s %s (%T)\n", dir, id, c.Name(), c)
	}
}
