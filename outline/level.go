// Package outline orders accepted headings, assigns hierarchy levels,
// and assembles the final document outline.
package outline

import (
	"sort"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/score"
)

// AssignerConfig holds configuration for level assignment
type AssignerConfig struct {
	// MaxDepth caps the assigned hierarchy depth (default: 4)
	MaxDepth int
}

// DefaultAssignerConfig returns sensible default configuration
func DefaultAssignerConfig() AssignerConfig {
	return AssignerConfig{
		MaxDepth: 4,
	}
}

// Assigner assigns hierarchy levels to accepted heading candidates
type Assigner struct {
	config AssignerConfig
}

// NewAssigner creates an assigner with default configuration
func NewAssigner() *Assigner {
	return &Assigner{
		config: DefaultAssignerConfig(),
	}
}

// NewAssignerWithConfig creates an assigner with custom configuration.
// A non-positive MaxDepth falls back to the default.
func NewAssignerWithConfig(config AssignerConfig) *Assigner {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultAssignerConfig().MaxDepth
	}
	return &Assigner{
		config: config,
	}
}

// Assign orders accepted candidates into reading order and assigns each
// a hierarchy level. Cues are consulted in priority order: numbering
// depth, then document-wide font-size ranking, then position. A final
// repair pass enforces that no level is more than one deeper than its
// predecessor and that a non-empty sequence starts at level 1.
func (a *Assigner) Assign(accepted []model.Candidate) []model.ScoredHeading {
	if len(accepted) == 0 {
		return nil
	}

	ordered := make([]model.Candidate, len(accepted))
	copy(ordered, accepted)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PageIndex != ordered[j].PageIndex {
			return ordered[i].PageIndex < ordered[j].PageIndex
		}
		if ordered[i].BBox.Top() != ordered[j].BBox.Top() {
			return ordered[i].BBox.Top() > ordered[j].BBox.Top()
		}
		return ordered[i].BBox.Left() < ordered[j].BBox.Left()
	})

	ranks := a.fontSizeRanks(ordered)

	headings := make([]model.ScoredHeading, 0, len(ordered))
	for i, cand := range ordered {
		level := 0

		if depth := score.NumberingDepth(cand.Text); depth > 0 {
			level = depth
			if level > a.config.MaxDepth {
				level = a.config.MaxDepth
			}
		} else if rank, ok := ranks[sizeBucket(cand.FontSize)]; ok {
			// Known heuristic imprecision: documents with many distinct
			// font sizes unrelated to hierarchy can rank inconsistently.
			// The repair pass bounds the damage.
			level = rank
		} else {
			level = a.positionalLevel(cand, headings, i)
		}

		headings = append(headings, model.ScoredHeading{Candidate: cand, Level: level})
	}

	repairLevels(headings)
	return headings
}

// fontSizeRanks maps distinct dominant font sizes, sorted descending, to
// levels 1..n. Ranking is only meaningful when the document's headings
// actually vary in size; with fewer than two distinct sizes the font cue
// is absent and assignment falls through to the positional heuristic.
func (a *Assigner) fontSizeRanks(headings []model.Candidate) map[int]int {
	seen := make(map[int]bool)
	var sizes []float64

	for _, h := range headings {
		if h.FontSize <= 0 {
			continue
		}
		bucket := sizeBucket(h.FontSize)
		if !seen[bucket] {
			seen[bucket] = true
			sizes = append(sizes, h.FontSize)
		}
	}

	if len(sizes) < 2 {
		return nil
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[int]int, len(sizes))
	for i, size := range sizes {
		level := i + 1
		if level > a.config.MaxDepth {
			level = a.config.MaxDepth
		}
		ranks[sizeBucket(size)] = level
	}
	return ranks
}

// positionalLevel applies the final fallback: the first heading on a
// page is top-level; later headings inherit the previous heading's
// level, promoted by one when their pattern score is higher.
func (a *Assigner) positionalLevel(cand model.Candidate, assigned []model.ScoredHeading, index int) int {
	if index == 0 || firstOnPage(cand, assigned) {
		return 1
	}

	prev := assigned[index-1]
	level := prev.Level
	if cand.Scores.Pattern > prev.Scores.Pattern && level > 1 {
		level--
	}
	return level
}

// firstOnPage reports whether no already-assigned heading shares the
// candidate's page.
func firstOnPage(cand model.Candidate, assigned []model.ScoredHeading) bool {
	for _, h := range assigned {
		if h.PageIndex == cand.PageIndex {
			return false
		}
	}
	return true
}

// repairLevels enforces the nesting invariant in place: a heading may
// be at most one level deeper than its predecessor, and the sequence
// starts at level 1.
func repairLevels(headings []model.ScoredHeading) {
	prev := 0
	for i := range headings {
		if headings[i].Level < 1 {
			headings[i].Level = 1
		}
		if headings[i].Level > prev+1 {
			headings[i].Level = prev + 1
		}
		prev = headings[i].Level
	}
}

// sizeBucket buckets font sizes at 0.1pt precision, matching the
// grouper's dominant-size bucketing.
func sizeBucket(size float64) int {
	return int(size*10 + 0.5)
}
