package contour

import (
	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/score"
)

// Options holds the configuration of every pipeline stage.
type Options struct {
	Grouper    layout.GrouperConfig
	Candidates layout.CandidateConfig
	Scoring    score.Config
	Levels     outline.AssignerConfig
}

// defaultOptions returns the default configuration for all stages.
func defaultOptions() Options {
	return Options{
		Grouper:    layout.DefaultGrouperConfig(),
		Candidates: layout.DefaultCandidateConfig(),
		Scoring:    score.DefaultConfig(),
		Levels:     outline.DefaultAssignerConfig(),
	}
}

// WithOptions replaces the full option set. The scoring configuration
// is validated when a terminal operation runs.
func (e *Extractor) WithOptions(options Options) *Extractor {
	e.options = options
	return e
}

// Weights overrides the signal weights used by the confidence
// aggregator. The weights must sum to 1.0.
func (e *Extractor) Weights(w score.Weights) *Extractor {
	e.options.Scoring.Weights = w
	return e
}

// MinConfidence overrides the acceptance threshold in [0, 1].
func (e *Extractor) MinConfidence(v float64) *Extractor {
	e.options.Scoring.MinConfidence = v
	return e
}

// VerticalTolerance overrides the glyph-grouping vertical tolerance,
// in layout units.
func (e *Extractor) VerticalTolerance(v float64) *Extractor {
	e.options.Grouper.VerticalTolerance = v
	return e
}

// MaxDepth caps the assigned heading hierarchy depth.
func (e *Extractor) MaxDepth(n int) *Extractor {
	e.options.Levels.MaxDepth = n
	return e
}

// Concurrent runs the four signal scorers concurrently per candidate.
// Purely an optimization; results are identical either way.
func (e *Extractor) Concurrent() *Extractor {
	e.options.Scoring.Concurrent = true
	return e
}
