package contour

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/score"
)

// glyphRun lays out one glyph per rune, left to right.
func glyphRun(text string, page int, x, y, size float64) []model.Glyph {
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

// sampleDocument reconstructs a two-page document: a top-level heading,
// a nested heading, and a paragraph of prose.
func sampleDocument() model.Document {
	prose := "This is a long descriptive paragraph of normal body text exceeding " +
		"one hundred characters in total length to simulate prose."

	return model.Document{
		Name: "sample",
		Pages: []model.Page{
			{Index: 0, Glyphs: glyphRun("1. Introduction", 0, 72, 700, 18)},
			{Index: 1, Glyphs: append(
				glyphRun("1.1 Background", 1, 72, 700, 14),
				glyphRun(prose, 1, 72, 688, 10)...)},
		},
	}
}

func TestOutline_Scenario(t *testing.T) {
	o, err := FromDocument(sampleDocument()).Outline()
	if err != nil {
		t.Fatal(err)
	}

	want := []model.OutlineEntry{
		{Heading: "1. Introduction", Level: 1, PageNumber: 1},
		{Heading: "1.1 Background", Level: 2, PageNumber: 2},
	}

	if len(o.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(o.Entries), len(want), o.Entries)
	}
	for i, w := range want {
		if o.Entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, o.Entries[i], w)
		}
	}
	if o.Title != "1. Introduction" {
		t.Errorf("Title = %q, want first confident top-level heading", o.Title)
	}
}

func TestOutline_EmptyDocument(t *testing.T) {
	o, err := FromDocument(model.Document{Name: "empty"}).Outline()
	if err != nil {
		t.Fatalf("empty document must not error: %v", err)
	}
	if !o.IsEmpty() {
		t.Errorf("outline not empty: %+v", o)
	}
}

func TestOutline_EmptyPages(t *testing.T) {
	doc := model.Document{
		Name:  "blank",
		Pages: []model.Page{{Index: 0}, {Index: 1}, {Index: 2}},
	}

	o, err := FromDocument(doc).Outline()
	if err != nil {
		t.Fatalf("glyphless pages must not error: %v", err)
	}
	if !o.IsEmpty() {
		t.Errorf("outline not empty: %+v", o)
	}
}

func TestJSON_Idempotent(t *testing.T) {
	a, err := FromDocument(sampleDocument()).JSON()
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromDocument(sampleDocument()).JSON()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Errorf("two runs over identical glyphs differ:\n%s\n%s", a, b)
	}
}

func TestOutline_InvalidConfigurationIsFatal(t *testing.T) {
	_, err := FromDocument(sampleDocument()).
		Weights(score.Weights{Pattern: 0.9, Format: 0.9}).
		Outline()

	if !errors.Is(err, score.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestOutline_FontIndependence(t *testing.T) {
	// Uniform font size everywhere; "Chapter 3" must still be found.
	doc := model.Document{
		Name: "uniform",
		Pages: []model.Page{
			{Index: 0, Glyphs: append(
				glyphRun("Chapter 3", 0, 72, 700, 12),
				glyphRun("ordinary prose follows the chapter heading without fanfare", 0, 72, 660, 12)...)},
		},
	}

	o, err := FromDocument(doc).Outline()
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(o.Entries), o.Entries)
	}
	if o.Entries[0].Heading != "Chapter 3" || o.Entries[0].Level != 1 {
		t.Errorf("entry = %+v, want Chapter 3 at level 1", o.Entries[0])
	}
}

func TestHeadings_SubScoreDiagnostics(t *testing.T) {
	headings, err := FromDocument(sampleDocument()).Headings()
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(headings))
	}

	for _, h := range headings {
		if h.Scores.Pattern != 1.0 {
			t.Errorf("%q: pattern = %v, want 1.0", h.Text, h.Scores.Pattern)
		}
		if h.Scores.Confidence < 0.5 || h.Scores.Confidence > 1 {
			t.Errorf("%q: confidence %v outside accepted range", h.Text, h.Scores.Confidence)
		}
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(Open("testdata/missing.pdf").Outline())
}
