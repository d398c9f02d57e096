package score

import (
	"sync"

	"github.com/tsawler/contour/model"
)

// Scorer computes confidence scores for heading candidates. The four
// signal scorers are pure functions over immutable inputs; a Scorer is
// safe for concurrent use.
type Scorer struct {
	config Config
}

// NewScorer creates a scorer with default configuration
func NewScorer() *Scorer {
	return &Scorer{
		config: DefaultConfig(),
	}
}

// NewScorerWithConfig creates a scorer with custom configuration. The
// configuration is validated up front; an invalid one is an error, never
// silently repaired.
func NewScorerWithConfig(config Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		config: config,
	}, nil
}

// Config returns the scorer's configuration
func (s *Scorer) Config() Config {
	return s.config
}

// Score computes the four sub-scores and the aggregate confidence for
// every candidate. lines must be the full document line sequence the
// candidates were extracted from; it supplies the neighbor geometry and
// per-page statistics. The input slice is not modified.
func (s *Scorer) Score(lines []model.Line, candidates []model.Candidate) []model.Candidate {
	stats := pageStatistics(lines)

	scored := make([]model.Candidate, len(candidates))
	for i, cand := range candidates {
		scored[i] = s.scoreCandidate(cand, lines, stats[cand.PageIndex])
	}
	return scored
}

// Accept returns the candidates whose confidence meets the acceptance
// threshold, preserving order. Sub-scores are retained for diagnostics.
func (s *Scorer) Accept(candidates []model.Candidate) []model.Candidate {
	var accepted []model.Candidate
	for _, cand := range candidates {
		if cand.Scores.Confidence >= s.config.MinConfidence {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

// scoreCandidate fills in the candidate's sub-score record. The four
// scorers share no mutable state and write disjoint fields, so they may
// run concurrently.
func (s *Scorer) scoreCandidate(cand model.Candidate, lines []model.Line, stats PageStats) model.Candidate {
	var prev *model.Line
	if cand.Index > 0 && cand.Index <= len(lines) {
		if p := &lines[cand.Index-1]; p.PageIndex == cand.PageIndex {
			prev = p
		}
	}

	var sub model.SubScores
	if s.config.Concurrent {
		var wg sync.WaitGroup
		wg.Add(4)
		go func() { defer wg.Done(); sub.Pattern = PatternScore(cand.Text) }()
		go func() { defer wg.Done(); sub.Format = s.FormatScore(cand.Line, prev, stats) }()
		go func() { defer wg.Done(); sub.Length = s.LengthScore(cand.Text) }()
		go func() { defer wg.Done(); sub.Font = s.FontScore(cand.Line, stats) }()
		wg.Wait()
	} else {
		sub.Pattern = PatternScore(cand.Text)
		sub.Format = s.FormatScore(cand.Line, prev, stats)
		sub.Length = s.LengthScore(cand.Text)
		sub.Font = s.FontScore(cand.Line, stats)
	}

	w := s.config.Weights
	sub.Confidence = clamp01(
		w.Pattern*sub.Pattern +
			w.Format*sub.Format +
			w.Length*sub.Length +
			w.Font*sub.Font)

	cand.Scores = sub
	return cand
}

// pageStatistics derives per-page geometry and body-font statistics
// from the document's lines.
func pageStatistics(lines []model.Line) map[int]PageStats {
	type acc struct {
		counts map[int]int
		sizes  map[int]float64
		left   float64
		right  float64
		seen   bool
	}

	pages := make(map[int]*acc)
	for _, line := range lines {
		a := pages[line.PageIndex]
		if a == nil {
			a = &acc{
				counts: make(map[int]int),
				sizes:  make(map[int]float64),
			}
			pages[line.PageIndex] = a
		}

		if !a.seen || line.BBox.Left() < a.left {
			a.left = line.BBox.Left()
		}
		if !a.seen || line.BBox.Right() > a.right {
			a.right = line.BBox.Right()
		}
		a.seen = true

		if line.FontSize <= 0 {
			continue
		}
		// Weight each size by glyph count so body text, which carries
		// most of the characters, dominates the mode.
		weight := line.GlyphCount
		if weight == 0 {
			weight = len([]rune(line.Text))
		}
		if weight == 0 {
			weight = 1
		}
		bucket := int(line.FontSize*2 + 0.5) // 0.5pt buckets
		a.counts[bucket] += weight
		if line.FontSize > a.sizes[bucket] {
			a.sizes[bucket] = line.FontSize
		}
	}

	stats := make(map[int]PageStats, len(pages))
	for pageIndex, a := range pages {
		best := 0
		bestCount := 0
		for bucket, count := range a.counts {
			if count > bestCount || (count == bestCount && bucket > best) {
				best = bucket
				bestCount = count
			}
		}
		stats[pageIndex] = PageStats{
			PageIndex:    pageIndex,
			BodyFontSize: a.sizes[best],
			LeftMargin:   a.left,
			RightEdge:    a.right,
		}
	}
	return stats
}
