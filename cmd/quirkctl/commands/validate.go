package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smdjeff/zigpy/pkg/examples"
	"github.com/smdjeff/zigpy/pkg/quirkfile"
	"github.com/smdjeff/zigpy/pkg/quirks"
)

// ErrValidationFailed is returned by RunValidate when any quirk is invalid.
var ErrValidationFailed = errors.New("validation failed")

func validateCmd() *cobra.Command {
	var builtin bool
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate quirk files and the built-in quirks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.QuirkDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" && !builtin {
				return errors.New("nothing to validate: give a directory or --builtin")
			}
			return RunValidate(cmd.OutOrStdout(), dir, builtin)
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, "include the built-in quirks")
	return cmd
}

// RunValidate validates the quirk files in dir and, with builtin, the
// built-in quirks, writing one line per quirk to w.
func RunValidate(w io.Writer, dir string, builtin bool) error {
	var defs []*quirks.Definition
	if dir != "" {
		loaded, err := quirkfile.LoadDir(dir, examples.Catalog())
		if err != nil {
			fmt.Fprintf(w, "FAIL %s\n  %v\n", dir, err)
			return ErrValidationFailed
		}
		defs = append(defs, loaded...)
	}
	if builtin {
		defs = append(defs, examples.All()...)
	}

	failed := 0
	for _, def := range defs {
		err := quirks.Validate(def, nil)
		if err == nil {
			fmt.Fprintf(w, "ok   %s\n", def.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL %s\n", def.Name)
		for _, e := range unjoin(err) {
			fmt.Fprintf(w, "  %v\n", e)
		}
	}

	fmt.Fprintf(w, "%d quirks, %d invalid\n", len(defs), failed)
	if failed > 0 {
		return ErrValidationFailed
	}
	return nil
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
