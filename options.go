package anchor

import (
	"go.uber.org/zap"

	"github.com/doclayer/anchor/locate"
	"github.com/doclayer/anchor/selection"
)

// engineOptions holds the configurable pieces of an Engine.
type engineOptions struct {
	locator      locate.Locator
	tolerances   selection.Tolerances
	forceOverlap bool
	logger       *zap.Logger
}

// defaultOptions returns the default engine configuration.
func defaultOptions() engineOptions {
	return engineOptions{
		locator:      locate.NewDocumentLocator(),
		tolerances:   selection.DefaultTolerances(),
		forceOverlap: true,
		logger:       zap.NewNop(),
	}
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

// WithLocator substitutes the text-locate collaborator. The default locator
// matches normalized tokens against each page's recognized words.
func WithLocator(locator locate.Locator) Option {
	return func(o *engineOptions) {
		if locator != nil {
			o.locator = locator
		}
	}
}

// WithTolerances overrides the word-matching adjacency tolerances.
func WithTolerances(t selection.Tolerances) Option {
	return func(o *engineOptions) {
		o.tolerances = t
	}
}

// WithForceOverlap controls whether located highlight fragments are stitched
// so no visual gap remains between consecutive lines. Enabled by default.
func WithForceOverlap(enabled bool) Option {
	return func(o *engineOptions) {
		o.forceOverlap = enabled
	}
}

// WithLogger attaches a logger for anomaly diagnostics, such as a selection
// resolving to zero or several paragraph regions. The default is a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
