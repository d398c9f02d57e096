// Package score assigns heading confidence to candidates using four
// independent signal scorers (pattern, format, length, font) combined by
// a weighted aggregator.
package score

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration indicates an invalid scoring configuration. It is
// returned at construction time; an invalid configuration is never
// silently repaired or renormalized.
var ErrConfiguration = errors.New("invalid scoring configuration")

// weightSumTolerance is the permitted deviation of the weight sum from 1.0
const weightSumTolerance = 1e-9

// Weights holds the relative weight of each signal scorer. The four
// weights must sum to 1.0.
type Weights struct {
	Pattern float64 `json:"pattern" yaml:"pattern"`
	Format  float64 `json:"format" yaml:"format"`
	Length  float64 `json:"length" yaml:"length"`
	Font    float64 `json:"font" yaml:"font"`
}

// DefaultWeights returns the default signal weighting. The pattern
// signal dominates and the font signal is deliberately weak, so
// documents with uniform or absent font metadata are not penalized.
func DefaultWeights() Weights {
	return Weights{
		Pattern: 0.40,
		Format:  0.30,
		Length:  0.20,
		Font:    0.10,
	}
}

// Sum returns the total of the four weights
func (w Weights) Sum() float64 {
	return w.Pattern + w.Format + w.Length + w.Font
}

// Validate checks that every weight lies in [0, 1] and that the weights
// sum to 1.0 within tolerance.
func (w Weights) Validate() error {
	for _, v := range [4]float64{w.Pattern, w.Format, w.Length, w.Font} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: weight %v out of [0,1]", ErrConfiguration, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrConfiguration, w.Sum())
	}
	return nil
}

// Config holds configuration for confidence scoring
type Config struct {
	// Weights are the signal weights; must sum to 1.0
	Weights Weights `yaml:"weights"`

	// MinConfidence is the acceptance threshold in [0, 1]; candidates
	// scoring below it are discarded (default: 0.5)
	MinConfidence float64 `yaml:"min_confidence"`

	// PeakMinLength and PeakMaxLength bound the text length band, in
	// runes, where the length score peaks (defaults: 3 and 100)
	PeakMinLength int `yaml:"peak_min_length"`
	PeakMaxLength int `yaml:"peak_max_length"`

	// PeakMaxWords is the word count above which the length score decays
	// (default: 15)
	PeakMaxWords int `yaml:"peak_max_words"`

	// HardMaxLength is the text length, in runes, at and beyond which
	// the length score is floored at zero (default: 300)
	HardMaxLength int `yaml:"hard_max_length"`

	// GapRatio is the whitespace-before threshold: the vertical gap to
	// the previous line must exceed GapRatio times the line height for
	// the isolation signal to fire (default: 1.5)
	GapRatio float64 `yaml:"gap_ratio"`

	// AlignTolerance is the distance, in points, within which a line's
	// left edge counts as aligned to the page margin (default: 10)
	AlignTolerance float64 `yaml:"align_tolerance"`

	// CenterRatio is the tolerance for horizontal centering, as a
	// fraction of the page text width (default: 0.05)
	CenterRatio float64 `yaml:"center_ratio"`

	// Concurrent runs the four signal scorers concurrently per
	// candidate. They are pure functions writing disjoint sub-score
	// fields, so this is an optimization with no effect on results
	// (default: false)
	Concurrent bool `yaml:"concurrent"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Weights:        DefaultWeights(),
		MinConfidence:  0.5,
		PeakMinLength:  3,
		PeakMaxLength:  100,
		PeakMaxWords:   15,
		HardMaxLength:  300,
		GapRatio:       1.5,
		AlignTolerance: 10.0,
		CenterRatio:    0.05,
	}
}

// Validate checks the configuration. It is called by NewScorerWithConfig
// and is fatal: an invalid configuration must be fixed, not worked around.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.MinConfidence) || c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence %v out of [0,1]", ErrConfiguration, c.MinConfidence)
	}
	if c.PeakMinLength < 1 {
		return fmt.Errorf("%w: peak min length %d < 1", ErrConfiguration, c.PeakMinLength)
	}
	if c.PeakMaxLength <= c.PeakMinLength {
		return fmt.Errorf("%w: peak length band [%d,%d] is empty", ErrConfiguration, c.PeakMinLength, c.PeakMaxLength)
	}
	if c.HardMaxLength <= c.PeakMaxLength {
		return fmt.Errorf("%w: hard max length %d must exceed peak max %d", ErrConfiguration, c.HardMaxLength, c.PeakMaxLength)
	}
	if c.PeakMaxWords < 1 {
		return fmt.Errorf("%w: peak max words %d < 1", ErrConfiguration, c.PeakMaxWords)
	}
	if c.GapRatio <= 0 || c.AlignTolerance < 0 || c.CenterRatio <= 0 {
		return fmt.Errorf("%w: geometry thresholds must be positive", ErrConfiguration)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
