package quirks

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smdjeff/zigpy/pkg/model"
	"github.com/smdjeff/zigpy/pkg/qlog"
)

// Get returns the quirk instance for dev built from the first matching
// definition in reg, or dev itself if nothing matches. A nil reg means
// DefaultRegistry.
func Get(dev *model.Device, reg *Registry) (model.Node, error) {
	return NewResolver(ResolverConfig{Registry: reg}).Resolve(dev)
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// Registry holds the candidate quirks (default: DefaultRegistry).
	Registry *Registry

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives one event per resolution step.
	// If nil, tracing is disabled.
	Trace qlog.Logger
}

// Resolver matches devices against a registry and builds quirk instances.
// It is safe for concurrent use.
type Resolver struct {
	registry *Registry
	logger   *slog.Logger
	trace    qlog.Logger
	now      func() time.Time
}

// NewResolver creates a Resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{
		registry: cfg.Registry,
		logger:   cfg.Logger,
		trace:    cfg.Trace,
		now:      time.Now,
	}
	if r.registry == nil {
		r.registry = DefaultRegistry
	}
	if r.trace == nil {
		r.trace = qlog.NoopLogger{}
	}
	return r
}

// Resolve returns the quirk instance for dev, or dev itself if no quirk
// matches. Only the first matching definition in registration order is
// considered; a construction failure is returned, not skipped.
func (r *Resolver) Resolve(dev *model.Device) (model.Node, error) {
	base := qlog.Event{
		ResolutionID: uuid.NewString(),
		IEEE:         dev.IEEE().String(),
		NWK:          dev.NWK(),
	}

	for pos, def := range r.registry.All() {
		reason := def.Signature.Mismatch(dev)
		if reason != "" {
			r.emit(base, qlog.CategoryCandidate, def, pos, func(e *qlog.Event) { e.Detail = reason })
			continue
		}

		r.emit(base, qlog.CategoryMatch, def, pos, nil)
		r.debug("quirk matched", "ieee", base.IEEE, "quirk", def.Name, "position", pos)

		built, err := Build(def, dev)
		if err != nil {
			r.emit(base, qlog.CategoryError, def, pos, func(e *qlog.Event) {
				e.Error = err.Error()
				var ce *ConstructionError
				if errors.As(err, &ce) {
					ep := ce.Endpoint
					e.Endpoint = &ep
				}
			})
			return nil, err
		}

		r.emit(base, qlog.CategoryBuilt, def, pos, func(e *qlog.Event) {
			e.Detail = describeEndpoints(built)
		})
		return built, nil
	}

	r.emit(base, qlog.CategoryNoMatch, nil, 0, nil)
	r.debug("no quirk matched", "ieee", base.IEEE, "candidates", r.registry.Len())
	return dev, nil
}

func (r *Resolver) emit(base qlog.Event, cat qlog.Category, def *Definition, pos int, fill func(*qlog.Event)) {
	e := base
	e.Timestamp = r.now()
	e.Category = cat
	if def != nil {
		e.Quirk = def.Name
		e.Position = pos
	}
	if fill != nil {
		fill(&e)
	}
	r.trace.Log(e)
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// describeEndpoints renders e.g. "1:*model.StandardEndpoint(in=3 out=1), 2:..."
func describeEndpoints(n model.Node) string {
	var sb strings.Builder
	for i, ep := range n.Endpoints() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d:%T(in=%d out=%d)", ep.ID(), ep, len(ep.InClusters()), len(ep.OutClusters()))
	}
	return sb.String()
}
