package score

import "github.com/tsawler/contour/model"

// Sub-scores for the font signals. The whole signal carries only a 0.10
// weight, so a document with uniform font sizes loses little.
const (
	fontRatioLarge  = 0.70 // at least 50% above body size
	fontRatioMedium = 0.50 // at least 20% above
	fontRatioSmall  = 0.30 // at least 5% above
	boldScore       = 0.30
	italicScore     = 0.15
)

// FontScore rewards a dominant font size above the page's body text
// size and the presence of bold or italic flags.
func (s *Scorer) FontScore(line model.Line, stats PageStats) float64 {
	score := 0.0

	if stats.BodyFontSize > 0 && line.FontSize > 0 {
		ratio := line.FontSize / stats.BodyFontSize
		switch {
		case ratio >= 1.5:
			score += fontRatioLarge
		case ratio >= 1.2:
			score += fontRatioMedium
		case ratio >= 1.05:
			score += fontRatioSmall
		}
	}

	if line.Bold {
		score += boldScore
	}
	if line.Italic {
		score += italicScore
	}

	return clamp01(score)
}
