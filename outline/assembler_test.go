package outline

import (
	"testing"

	"github.com/tsawler/contour/model"
)

func scoredHeading(text string, page, level int, confidence float64) model.ScoredHeading {
	h := model.ScoredHeading{Level: level}
	h.Text = text
	h.PageIndex = page
	h.Scores.Confidence = confidence
	return h
}

func TestAssemble_Empty(t *testing.T) {
	o := Assemble("report", nil)

	if !o.IsEmpty() {
		t.Errorf("outline not empty: %+v", o)
	}
	if o.Entries == nil {
		t.Error("Entries is nil, want empty slice for stable JSON output")
	}
	if o.Title != "report" {
		t.Errorf("Title = %q, want document name fallback", o.Title)
	}
}

func TestAssemble_EntriesAndPageNumbers(t *testing.T) {
	headings := []model.ScoredHeading{
		scoredHeading("1. Introduction", 0, 1, 0.9),
		scoredHeading("1.1 Background", 1, 2, 0.8),
	}

	o := Assemble("doc", headings)
	if len(o.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(o.Entries))
	}

	want := []model.OutlineEntry{
		{Heading: "1. Introduction", Level: 1, PageNumber: 1},
		{Heading: "1.1 Background", Level: 2, PageNumber: 2},
	}
	for i, w := range want {
		if o.Entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, o.Entries[i], w)
		}
	}
}

func TestAssemble_TitleSelection(t *testing.T) {
	tests := []struct {
		name     string
		headings []model.ScoredHeading
		want     string
	}{
		{
			"confident top-level heading becomes title",
			[]model.ScoredHeading{
				scoredHeading("Annual Report 2025", 0, 1, 0.85),
				scoredHeading("1. Overview", 0, 1, 0.9),
			},
			"Annual Report 2025",
		},
		{
			"low-confidence headings fall back to name",
			[]model.ScoredHeading{
				scoredHeading("maybe a heading", 0, 1, 0.55),
			},
			"doc",
		},
		{
			"deep headings never become the title",
			[]model.ScoredHeading{
				scoredHeading("1.1 Details", 0, 2, 0.95),
			},
			"doc",
		},
	}

	for _, tt := range tests {
		o := Assemble("doc", tt.headings)
		if o.Title != tt.want {
			t.Errorf("%s: Title = %q, want %q", tt.name, o.Title, tt.want)
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	headings := []model.ScoredHeading{
		scoredHeading("1. Introduction", 0, 1, 0.9),
		scoredHeading("1.1 Background", 1, 2, 0.8),
	}

	a := Assemble("doc", headings)
	b := Assemble("doc", headings)

	if a.Title != b.Title || len(a.Entries) != len(b.Entries) {
		t.Fatalf("repeated assembly differs: %+v vs %+v", a, b)
	}
	for i := range a.Entries {
		if a.Entries[i] != b.Entries[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, a.Entries[i], b.Entries[i])
		}
	}
}
