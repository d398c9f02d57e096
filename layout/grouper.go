// Package layout reconstructs text lines from positioned glyphs and
// filters them into heading candidates.
package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/contour/model"
)

// GrouperConfig holds configuration for glyph-to-line grouping
type GrouperConfig struct {
	// VerticalTolerance is the maximum distance between a glyph's top edge
	// and the running line's top edge for the glyph to join that line
	// (default: 2 points)
	VerticalTolerance float64

	// SpaceGapRatio is the horizontal gap between adjacent glyphs, as a
	// fraction of font size, beyond which a word break is inserted
	// (default: 0.3)
	SpaceGapRatio float64
}

// DefaultGrouperConfig returns sensible default configuration
func DefaultGrouperConfig() GrouperConfig {
	return GrouperConfig{
		VerticalTolerance: 2.0,
		SpaceGapRatio:     0.3,
	}
}

// Grouper clusters positioned glyphs into text lines using vertical
// proximity. Grouping is purely geometric and therefore character-set
// independent.
type Grouper struct {
	config GrouperConfig
}

// NewGrouper creates a grouper with default configuration
func NewGrouper() *Grouper {
	return &Grouper{
		config: DefaultGrouperConfig(),
	}
}

// NewGrouperWithConfig creates a grouper with custom configuration.
// Zero-valued fields fall back to their defaults.
func NewGrouperWithConfig(config GrouperConfig) *Grouper {
	def := DefaultGrouperConfig()
	if config.VerticalTolerance <= 0 {
		config.VerticalTolerance = def.VerticalTolerance
	}
	if config.SpaceGapRatio <= 0 {
		config.SpaceGapRatio = def.SpaceGapRatio
	}
	return &Grouper{
		config: config,
	}
}

// GroupDocument groups every page of a document and concatenates the
// resulting lines in page order. Line indexes are assigned in document
// reading order.
func (g *Grouper) GroupDocument(doc model.Document) []model.Line {
	var lines []model.Line
	for _, page := range doc.Pages {
		lines = append(lines, g.GroupPage(page)...)
	}
	for i := range lines {
		lines[i].Index = i
	}
	return lines
}

// GroupPage groups the glyphs of a single page into lines, sorted top to
// bottom. An empty page yields zero lines.
func (g *Grouper) GroupPage(page model.Page) []model.Line {
	glyphs := dropMalformed(page.Glyphs)
	if len(glyphs) == 0 {
		return nil
	}

	// Sort by top edge (descending, top of page first), then left edge.
	// The input order from the glyph source is not guaranteed.
	sorted := make([]model.Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].BBox.Top(), sorted[j].BBox.Top()
		if ti != tj {
			return ti > tj
		}
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})

	var lines []model.Line
	var current []model.Glyph
	var currentTop float64

	for _, glyph := range sorted {
		if len(current) == 0 {
			current = append(current, glyph)
			currentTop = glyph.BBox.Top()
			continue
		}

		// The sort guarantees glyph tops are non-increasing, so the gap
		// to the running line's top is never negative.
		if currentTop-glyph.BBox.Top() <= g.config.VerticalTolerance {
			current = append(current, glyph)
		} else {
			lines = append(lines, g.buildLine(page.Index, current))
			current = []model.Glyph{glyph}
			currentTop = glyph.BBox.Top()
		}
	}

	if len(current) > 0 {
		lines = append(lines, g.buildLine(page.Index, current))
	}

	return lines
}

// buildLine assembles a Line from glyphs already known to share a
// vertical band. Glyphs are ordered left to right; the dominant font
// size is the modal size across members.
func (g *Grouper) buildLine(pageIndex int, glyphs []model.Glyph) model.Line {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].BBox.Left() < glyphs[j].BBox.Left()
	})

	var sb strings.Builder
	bbox := glyphs[0].BBox
	bold := false
	italic := false
	prevRight := 0.0

	for i, glyph := range glyphs {
		if i > 0 {
			bbox = bbox.Union(glyph.BBox)

			// Insert a word break when the horizontal gap between glyphs
			// is wider than intra-word spacing, unless either side is
			// already whitespace.
			gap := glyph.BBox.Left() - prevRight
			size := glyph.FontSize
			if size <= 0 {
				size = glyphs[i-1].FontSize
			}
			if gap > g.config.SpaceGapRatio*size &&
				!endsInSpace(sb.String()) && !startsWithSpace(glyph.Text) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(glyph.Text)
		prevRight = glyph.BBox.Right()
		bold = bold || glyph.Bold
		italic = italic || glyph.Italic
	}

	return model.Line{
		Text:       sb.String(),
		PageIndex:  pageIndex,
		BBox:       bbox,
		FontSize:   dominantFontSize(glyphs),
		Bold:       bold,
		Italic:     italic,
		GlyphCount: len(glyphs),
	}
}

// dropMalformed removes glyphs missing usable geometry. A malformed
// glyph degrades the line it belonged to rather than failing the page.
func dropMalformed(glyphs []model.Glyph) []model.Glyph {
	out := glyphs[:0:0]
	for _, g := range glyphs {
		if g.Text == "" || !g.BBox.IsValid() {
			continue
		}
		out = append(out, g)
	}
	return out
}

// dominantFontSize returns the modal font size of the glyphs, bucketed
// at 0.1pt precision. Ties go to the larger size.
func dominantFontSize(glyphs []model.Glyph) float64 {
	counts := make(map[int]int)
	sizes := make(map[int]float64)

	for _, g := range glyphs {
		if g.FontSize <= 0 {
			continue
		}
		bucket := int(g.FontSize*10 + 0.5)
		counts[bucket]++
		if g.FontSize > sizes[bucket] {
			sizes[bucket] = g.FontSize
		}
	}

	best := 0
	bestCount := 0
	for bucket, count := range counts {
		if count > bestCount || (count == bestCount && bucket > best) {
			best = bucket
			bestCount = count
		}
	}

	return sizes[best]
}

func endsInSpace(s string) bool {
	return s != "" && s[len(s)-1] == ' '
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}
