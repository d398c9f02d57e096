// Package rank orders document sections by relevance to a persona and
// task description, using TF-IDF vectors and cosine similarity. It is
// a companion to outline extraction: the outline locates sections, rank
// decides which of them matter for a given reader.
package rank

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Section is a unit of rankable content, typically the text between
// two consecutive outline headings.
type Section struct {
	Document   string  `json:"document"`
	PageNumber int     `json:"page_number"`
	Title      string  `json:"section_title"`
	Text       string  `json:"-"`
	Score      float64 `json:"-"`
}

// RankedSection is a Section with its final importance rank, 1 being
// the most relevant.
type RankedSection struct {
	Document   string `json:"document"`
	PageNumber int    `json:"page_number"`
	Title      string `json:"section_title"`
	Rank       int    `json:"importance_rank"`
}

// Report is the persona-analysis output for a batch of documents.
type Report struct {
	Metadata Metadata        `json:"metadata"`
	Sections []RankedSection `json:"extracted_sections"`
}

// Metadata records what was asked and when.
type Metadata struct {
	Documents []string `json:"input_documents"`
	Persona   string   `json:"persona"`
	Task      string   `json:"job_to_be_done"`
	Timestamp string   `json:"processing_timestamp"`
}

// Rank scores sections against the persona and task, highest first.
// The returned slice is a sorted copy; ties keep input order.
func Rank(persona, task string, sections []Section) []Section {
	query := persona + ". " + task

	corpus := make([][]string, 0, len(sections)+1)
	corpus = append(corpus, tokenize(query))
	for _, s := range sections {
		corpus = append(corpus, tokenize(s.Title+" "+s.Text))
	}

	idf := inverseDocumentFrequency(corpus)
	queryVec := tfidfVector(corpus[0], idf)

	ranked := make([]Section, len(sections))
	copy(ranked, sections)
	for i := range ranked {
		ranked[i].Score = cosine(queryVec, tfidfVector(corpus[i+1], idf))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BuildReport ranks sections and assembles the top-k report. The
// timestamp is passed in so output is reproducible.
func BuildReport(persona, task string, documents []string, sections []Section, k int, now time.Time) Report {
	ranked := Rank(persona, task, sections)
	if k > len(ranked) {
		k = len(ranked)
	}

	out := make([]RankedSection, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, RankedSection{
			Document:   ranked[i].Document,
			PageNumber: ranked[i].PageNumber,
			Title:      ranked[i].Title,
			Rank:       i + 1,
		})
	}

	return Report{
		Metadata: Metadata{
			Documents: documents,
			Persona:   persona,
			Task:      task,
			Timestamp: now.UTC().Format(time.RFC3339),
		},
		Sections: out,
	}
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-rune tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// inverseDocumentFrequency computes smoothed IDF over the corpus.
func inverseDocumentFrequency(corpus [][]string) map[string]float64 {
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(docFreq))
	for tok, df := range docFreq {
		idf[tok] = math.Log((1+n)/(1+float64(df))) + 1
	}
	return idf
}

// tfidfVector builds a sparse term-frequency vector weighted by IDF.
func tfidfVector(doc []string, idf map[string]float64) map[string]float64 {
	if len(doc) == 0 {
		return nil
	}

	counts := make(map[string]int, len(doc))
	for _, tok := range doc {
		counts[tok]++
	}

	vec := make(map[string]float64, len(counts))
	total := float64(len(doc))
	for tok, c := range counts {
		vec[tok] = float64(c) / total * idf[tok]
	}
	return vec
}

// cosine returns the cosine similarity of two sparse vectors, 0 when
// either is empty.
func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for tok, va := range a {
		normA += va * va
		if vb, ok := b[tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
