package layout

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/contour/model"
)

// CandidateConfig holds configuration for candidate admissibility
type CandidateConfig struct {
	// MinLength is the minimum trimmed text length in runes (default: 1)
	MinLength int

	// MaxLength is the exclusive upper bound on trimmed text length in
	// runes (default: 500). A 500-rune line is not a candidate.
	MaxLength int

	// MinMeaningful is the minimum number of letter or digit runes a
	// line must contain; lines of pure punctuation or symbols are noise
	// (default: 1)
	MinMeaningful int
}

// DefaultCandidateConfig returns sensible default configuration
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		MinLength:     1,
		MaxLength:     500,
		MinMeaningful: 1,
	}
}

// ExtractCandidates filters lines into heading candidates using default
// configuration. The stage is intentionally lenient; precision is
// deferred to scoring.
func ExtractCandidates(lines []model.Line) []model.Candidate {
	return ExtractCandidatesWithConfig(lines, DefaultCandidateConfig())
}

// ExtractCandidatesWithConfig filters lines into heading candidates.
// Each admissible line yields exactly one candidate carrying the
// normalized line text.
func ExtractCandidatesWithConfig(lines []model.Line, config CandidateConfig) []model.Candidate {
	def := DefaultCandidateConfig()
	if config.MinLength <= 0 {
		config.MinLength = def.MinLength
	}
	if config.MaxLength <= 0 {
		config.MaxLength = def.MaxLength
	}
	if config.MinMeaningful <= 0 {
		config.MinMeaningful = def.MinMeaningful
	}

	var candidates []model.Candidate
	for _, line := range lines {
		cleaned := CleanText(line.Text)
		if !admissible(cleaned, config) {
			continue
		}

		cand := model.Candidate{Line: line}
		cand.Text = cleaned
		candidates = append(candidates, cand)
	}
	return candidates
}

// CleanText normalizes line text for scoring: Unicode NFKC
// normalization, whitespace collapsed to single spaces, leading and
// trailing whitespace removed.
func CleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

func admissible(text string, config CandidateConfig) bool {
	length := len([]rune(text))
	if length < config.MinLength || length >= config.MaxLength {
		return false
	}

	meaningful := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			meaningful++
			if meaningful >= config.MinMeaningful {
				return true
			}
		}
	}
	return false
}
