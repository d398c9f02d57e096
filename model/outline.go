package model

import "strings"

// Line is an ordered run of glyphs judged to belong to one visual text
// line. Lines are created by the layout grouper and never mutated
// afterward.
type Line struct {
	// Text is the assembled text content of the line
	Text string

	// PageIndex is the 0-based page the line appears on
	PageIndex int

	// BBox is the union of the member glyphs' bounding boxes
	BBox BBox

	// FontSize is the dominant (modal) font size of the member glyphs
	FontSize float64

	// Bold and Italic are set if any member glyph carries the flag
	Bold   bool
	Italic bool

	// Index is the line's position in document reading order (0-based)
	Index int

	// GlyphCount is the number of glyphs merged into this line
	GlyphCount int
}

// WordCount returns the number of whitespace-separated words in the line
func (l Line) WordCount() int {
	return len(strings.Fields(l.Text))
}

// SubScores is the per-signal score breakdown for a candidate. All four
// sub-scores are normalized to [0, 1]; Confidence is their weighted
// combination.
type SubScores struct {
	Pattern    float64 `json:"pattern"`
	Format     float64 `json:"format"`
	Length     float64 `json:"length"`
	Font       float64 `json:"font"`
	Confidence float64 `json:"confidence"`
}

// Candidate is a line that passed coarse admissibility filtering and is
// eligible for heading scoring.
type Candidate struct {
	Line

	// Scores is filled in by the score package
	Scores SubScores
}

// ScoredHeading is an accepted candidate with an assigned hierarchy
// level (1 = top). Ordering among headings is document reading order.
type ScoredHeading struct {
	Candidate

	// Level is the heading's hierarchy depth, starting at 1
	Level int
}

// OutlineEntry is one entry of the final outline.
type OutlineEntry struct {
	// Heading is the verbatim reconstructed line text, including any
	// numbering prefix
	Heading string `json:"heading"`

	// Level is the hierarchy depth, a positive integer starting at 1
	Level int `json:"level"`

	// PageNumber is the 1-based page the heading appears on
	PageNumber int `json:"page_number"`
}

// Outline is the ordered, leveled heading sequence for one document.
type Outline struct {
	// Title is the detected document title, or the document name when no
	// confident top-level heading exists
	Title string `json:"title"`

	// Entries are the outline entries in reading order. Marshals as an
	// empty array, not null, for documents with no headings.
	Entries []OutlineEntry `json:"outline"`
}

// IsEmpty returns true if the outline has no entries
func (o Outline) IsEmpty() bool {
	return len(o.Entries) == 0
}
