package layout

import (
	"math"
	"testing"

	"github.com/tsawler/contour/model"
)

// makeGlyphRun lays out one glyph per rune, left to right, at the given
// position and font size.
func makeGlyphRun(text string, page int, x, y, size float64) []model.Glyph {
	var glyphs []model.Glyph
	w := size * 0.55
	for i, r := range []rune(text) {
		glyphs = append(glyphs, model.Glyph{
			Text:      string(r),
			PageIndex: page,
			BBox:      model.NewBBox(x+float64(i)*w, y, w, size),
			FontName:  "Helvetica",
			FontSize:  size,
		})
	}
	return glyphs
}

func TestGroupPage_Empty(t *testing.T) {
	g := NewGrouper()
	lines := g.GroupPage(model.Page{Index: 0})
	if len(lines) != 0 {
		t.Errorf("empty page produced %d lines, want 0", len(lines))
	}
}

func TestGroupPage_SingleLine(t *testing.T) {
	g := NewGrouper()
	glyphs := makeGlyphRun("Overview", 0, 72, 700, 12)

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "Overview" {
		t.Errorf("Text = %q, want %q", lines[0].Text, "Overview")
	}
	if lines[0].FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", lines[0].FontSize)
	}
	if lines[0].GlyphCount != 8 {
		t.Errorf("GlyphCount = %d, want 8", lines[0].GlyphCount)
	}
}

func TestGroupPage_UnsortedInput(t *testing.T) {
	// Glyphs arrive in arbitrary stream order; grouping must sort by
	// (top, left) first.
	g := NewGrouper()
	glyphs := makeGlyphRun("ab", 0, 72, 700, 12)
	glyphs[0], glyphs[1] = glyphs[1], glyphs[0]

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "ab" {
		t.Errorf("Text = %q, want %q", lines[0].Text, "ab")
	}
}

func TestGroupPage_VerticalTolerance(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		wantLines int
	}{
		{"within tolerance", 1.5, 1},
		{"at tolerance", 2.0, 1},
		{"beyond tolerance", 2.5, 2},
		{"separate lines", 20.0, 2},
	}

	for _, tt := range tests {
		g := NewGrouper()
		glyphs := makeGlyphRun("ab", 0, 72, 700, 12)
		glyphs = append(glyphs, makeGlyphRun("cd", 0, 100, 700-tt.offset, 12)...)

		lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
		if len(lines) != tt.wantLines {
			t.Errorf("%s: got %d lines, want %d", tt.name, len(lines), tt.wantLines)
		}
	}
}

func TestGroupPage_TopToBottomOrder(t *testing.T) {
	g := NewGrouper()
	var glyphs []model.Glyph
	glyphs = append(glyphs, makeGlyphRun("bottom", 0, 72, 100, 12)...)
	glyphs = append(glyphs, makeGlyphRun("top", 0, 72, 700, 12)...)
	glyphs = append(glyphs, makeGlyphRun("middle", 0, 72, 400, 12)...)

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	want := []string{"top", "middle", "bottom"}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
		}
	}
}

func TestGroupPage_DropsMalformedGlyphs(t *testing.T) {
	g := NewGrouper()
	glyphs := makeGlyphRun("ok", 0, 72, 700, 12)
	glyphs = append(glyphs,
		model.Glyph{Text: "x", BBox: model.BBox{X: math.NaN(), Width: 5, Height: 12}},
		model.Glyph{Text: "y", BBox: model.NewBBox(0, 0, -3, 12)},
		model.Glyph{Text: "", BBox: model.NewBBox(90, 700, 5, 12)},
	)

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "ok" {
		t.Errorf("Text = %q, want %q", lines[0].Text, "ok")
	}
}

func TestGroupPage_WordBreakInsertion(t *testing.T) {
	g := NewGrouper()
	glyphs := makeGlyphRun("1.", 0, 72, 700, 12)
	// Start the next word with a gap wider than SpaceGapRatio*size.
	glyphs = append(glyphs, makeGlyphRun("Introduction", 0, 95, 700, 12)...)

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "1. Introduction" {
		t.Errorf("Text = %q, want %q", lines[0].Text, "1. Introduction")
	}
}

func TestGroupPage_StyleFlagsPropagate(t *testing.T) {
	g := NewGrouper()
	glyphs := makeGlyphRun("abc", 0, 72, 700, 12)
	glyphs[1].Bold = true
	glyphs[2].Italic = true

	lines := g.GroupPage(model.Page{Index: 0, Glyphs: glyphs})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !lines[0].Bold || !lines[0].Italic {
		t.Errorf("Bold = %v, Italic = %v, want both true", lines[0].Bold, lines[0].Italic)
	}
}

func TestDominantFontSize(t *testing.T) {
	tests := []struct {
		name  string
		sizes []float64
		want  float64
	}{
		{"uniform", []float64{12, 12, 12}, 12},
		{"majority wins", []float64{18, 10, 10, 10}, 10},
		{"tie goes to larger", []float64{14, 14, 10, 10}, 14},
	}

	for _, tt := range tests {
		var glyphs []model.Glyph
		for _, s := range tt.sizes {
			glyphs = append(glyphs, model.Glyph{Text: "a", FontSize: s})
		}
		if got := dominantFontSize(glyphs); got != tt.want {
			t.Errorf("%s: dominantFontSize = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGroupDocument_PageOrderAndIndexes(t *testing.T) {
	g := NewGrouper()
	doc := model.Document{
		Pages: []model.Page{
			{Index: 0, Glyphs: makeGlyphRun("first", 0, 72, 700, 12)},
			{Index: 1}, // empty page yields zero lines without error
			{Index: 2, Glyphs: makeGlyphRun("second", 2, 72, 700, 12)},
		},
	}

	lines := g.GroupDocument(doc)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if line.Index != i {
			t.Errorf("line %d has Index %d", i, line.Index)
		}
	}
	if lines[0].PageIndex != 0 || lines[1].PageIndex != 2 {
		t.Errorf("page indexes = %d, %d, want 0, 2", lines[0].PageIndex, lines[1].PageIndex)
	}
}
