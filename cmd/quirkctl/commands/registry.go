package commands

import (
	"log/slog"

	"github.com/smdjeff/zigpy/pkg/examples"
	"github.com/smdjeff/zigpy/pkg/quirkfile"
	"github.com/smdjeff/zigpy/pkg/quirks"
)

// loadRegistry builds a registry from the quirk files in dir followed by
// the built-in quirks. Built-in quirks come last since they include a
// catch-all fallback.
func loadRegistry(dir string, builtin bool, log *slog.Logger) (*quirks.Registry, error) {
	reg := quirks.NewRegistry()
	if dir != "" {
		defs, err := quirkfile.RegisterDir(reg, dir, examples.Catalog())
		if err != nil {
			return nil, err
		}
		if log != nil {
			log.Debug("loaded quirk files", "dir", dir, "quirks", len(defs))
		}
	}
	if builtin {
		examples.Register(reg)
	}
	return reg, nil
}
