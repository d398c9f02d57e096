package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/contour/model"
)

func linesOf(texts ...string) []model.Line {
	var lines []model.Line
	for i, text := range texts {
		lines = append(lines, model.Line{Text: text, Index: i})
	}
	return lines
}

func TestExtractCandidates_Admissibility(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"normal heading", "1. Introduction", true},
		{"single letter", "A", true},
		{"single digit", "7", true},
		{"empty", "", false},
		{"whitespace only", "   \t  ", false},
		{"punctuation only", "----", false},
		{"symbols only", "• • •", false},
		{"one meaningful rune among noise", "§ 4", true},
		{"long but admissible", strings.Repeat("a", 499), true},
		{"exactly at max length", strings.Repeat("a", 500), false},
		{"over max length", strings.Repeat("a", 600), false},
	}

	for _, tt := range tests {
		cands := ExtractCandidates(linesOf(tt.text))
		got := len(cands) == 1
		if got != tt.want {
			t.Errorf("%s: admissible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExtractCandidates_PreservesLineAttributes(t *testing.T) {
	line := model.Line{
		Text:      "  Chapter   1  ",
		PageIndex: 3,
		FontSize:  18,
		Bold:      true,
		Index:     7,
	}

	cands := ExtractCandidates([]model.Line{line})
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}

	c := cands[0]
	if c.Text != "Chapter 1" {
		t.Errorf("Text = %q, want %q", c.Text, "Chapter 1")
	}
	if c.PageIndex != 3 || c.FontSize != 18 || !c.Bold || c.Index != 7 {
		t.Errorf("line attributes not preserved: %+v", c.Line)
	}
	if c.Scores != (model.SubScores{}) {
		t.Errorf("fresh candidate has non-zero scores: %+v", c.Scores)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim and collapse", "  1.   Introduction \t ", "1. Introduction"},
		{"nfkc ligature", "ﬁrst", "first"},
		{"nfkc fullwidth digit", "１. Scope", "1. Scope"},
		{"plain passthrough", "Background", "Background"},
	}

	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("%s: CleanText(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestExtractCandidates_MultilingualText(t *testing.T) {
	// Admissibility is script-independent: CJK and Devanagari headings
	// count letters the same way Latin ones do.
	lines := linesOf("第1章 序論", "अध्याय एक", "1. Introduction")
	cands := ExtractCandidates(lines)
	if len(cands) != 3 {
		t.Errorf("got %d candidates, want 3", len(cands))
	}
}
