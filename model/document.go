package model

// Glyph is one rendered character as delivered by the PDF glyph source.
// Glyphs are immutable once created; the layout package only reads them.
type Glyph struct {
	// Text is the character value. Usually a single rune, but
	// multi-codepoint clusters are carried through as-is: grouping is
	// purely geometric, not character-set dependent.
	Text string

	// PageIndex is the 0-based page the glyph appears on
	PageIndex int

	// BBox is the glyph's bounding box in PDF coordinates
	BBox BBox

	// FontName is the PostScript name of the glyph's font
	FontName string

	// FontSize is the rendered font size in points
	FontSize float64

	// Bold and Italic are style flags derived from font metadata
	Bold   bool
	Italic bool
}

// Page holds the glyphs of a single page. A page with no glyphs is valid
// and yields zero lines downstream.
type Page struct {
	Index  int     // 0-based page index
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Glyphs []Glyph
}

// Document is the glyph stream for one document, ordered by page.
type Document struct {
	// Name identifies the document in batch reports and is used as the
	// fallback outline title. Typically the source file stem.
	Name string

	Pages []Page
}

// PageCount returns the number of pages in the document
func (d Document) PageCount() int {
	return len(d.Pages)
}

// GlyphCount returns the total number of glyphs across all pages
func (d Document) GlyphCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Glyphs)
	}
	return n
}
