package outline

import "github.com/tsawler/contour/model"

// titleMinConfidence is the confidence a top-level heading needs to be
// promoted to the document title.
const titleMinConfidence = 0.7

// Assemble builds the final ordered outline from leveled headings. The
// result is fully determined by its input: no randomness, no clock.
//
// The title is the first level-1 heading with high confidence; when no
// heading qualifies, the document name stands in. Page numbers are
// 1-based in the output.
func Assemble(name string, headings []model.ScoredHeading) model.Outline {
	entries := make([]model.OutlineEntry, 0, len(headings))
	title := ""

	for _, h := range headings {
		if title == "" && h.Level == 1 && h.Scores.Confidence >= titleMinConfidence {
			title = h.Text
		}
		entries = append(entries, model.OutlineEntry{
			Heading:    h.Text,
			Level:      h.Level,
			PageNumber: h.PageIndex + 1,
		})
	}

	if title == "" {
		title = name
	}

	return model.Outline{
		Title:   title,
		Entries: entries,
	}
}
