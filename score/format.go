package score

import (
	"math"

	"github.com/tsawler/contour/model"
)

// Sub-scores for the structural-isolation signals, additive then
// clamped to 1.
const (
	isolationScore = 0.50
	leftAlignScore = 0.30
	centeredScore  = 0.40
)

// PageStats holds the per-page geometry and font statistics the format
// and font scorers need. Computed once per page from its lines only;
// no font metadata is involved in the geometric fields.
type PageStats struct {
	// PageIndex is the 0-based page these statistics describe
	PageIndex int

	// BodyFontSize is the glyph-weighted modal font size of the page,
	// taken as the body text size
	BodyFontSize float64

	// LeftMargin is the smallest left edge among the page's lines
	LeftMargin float64

	// RightEdge is the largest right edge among the page's lines
	RightEdge float64
}

// textWidth returns the width of the page's occupied text band
func (s PageStats) textWidth() float64 {
	return s.RightEdge - s.LeftMargin
}

// FormatScore rewards structural isolation, computed from geometry
// only: a wide whitespace gap before the line, alignment at the left
// margin, or horizontal centering. prev is the line immediately above
// on the same page, or nil at the top of a page.
func (s *Scorer) FormatScore(line model.Line, prev *model.Line, stats PageStats) float64 {
	score := 0.0

	// Whitespace before: the top of a page is isolated by definition.
	if prev == nil {
		score += isolationScore
	} else {
		gap := prev.BBox.Bottom() - line.BBox.Top()
		if gap > s.config.GapRatio*line.BBox.Height {
			score += isolationScore
		}
	}

	indent := line.BBox.Left() - stats.LeftMargin
	if math.Abs(indent) <= s.config.AlignTolerance {
		score += leftAlignScore
	} else if width := stats.textWidth(); width > 0 {
		// Centered lines sit well inside the margin with their midpoint
		// near the page text band's midpoint.
		pageCenter := stats.LeftMargin + width/2
		if math.Abs(line.BBox.Center().X-pageCenter) <= s.config.CenterRatio*width {
			score += centeredScore
		}
	}

	return clamp01(score)
}
