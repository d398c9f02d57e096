package score

import (
	"regexp"
	"strings"
	"unicode"
)

// patternMatcher is one variant of the heading-prefix grammar. The set
// of matchers is closed and evaluated in fixed priority order; only the
// first matching prefix variant contributes its sub-score.
type patternMatcher struct {
	kind  string
	re    *regexp.Regexp
	score float64
}

var prefixMatchers = []patternMatcher{
	{"numbered", regexp.MustCompile(`^\d+(\.\d+)*[.)]?(\s|$)`), 1.0},
	{"roman", regexp.MustCompile(`^[IVXLCDM]+[.)](\s|$)`), 0.9},
	{"lettered", regexp.MustCompile(`^[A-Z][.)](\s|$)`), 0.8},
	{"parenthesized", regexp.MustCompile(`^\([a-zA-Z0-9]{1,3}\)(\s|$)`), 0.8},
	{"bullet", regexp.MustCompile(`^[•▪‣◦●○*]\s`), 0.6},
	{"keyword", regexp.MustCompile(`^(?i)(chapter|section|part|appendix|annex|introduction|conclusion|abstract|summary|overview|background|references|acknowledg)`), 0.8},
}

// Sub-scores for case and interrogative signals, added on top of the
// prefix variant score before clamping.
const (
	allCapsScore       = 0.50
	titleCaseScore     = 0.25
	interrogativeScore = 0.15
)

// numberingPrefixRe captures a leading dot-separated numbering prefix
// such as "1.", "2.3" or "4.1.2".
var numberingPrefixRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?(?:\s|$)`)

// PatternScore scores the text against the heading-pattern grammar:
// numbering, bullets and keyword prefixes score highest, all-caps text
// scores medium, interrogative lines score low but non-zero, and plain
// prose scores zero. Matched sub-signals are additive, clamped to 1.
func PatternScore(text string) float64 {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0
	}

	score := 0.0
	for _, m := range prefixMatchers {
		if m.re.MatchString(t) {
			score += m.score
			break
		}
	}

	if isAllCaps(t) {
		score += allCapsScore
	} else if isTitleCase(t) {
		score += titleCaseScore
	}

	if strings.HasSuffix(t, "?") {
		score += interrogativeScore
	}

	return clamp01(score)
}

// NumberingDepth returns the number of components in a leading numbering
// prefix: "1." → 1, "1.1" → 2, "1.1.1" → 3. Text without a numbering
// prefix returns 0.
func NumberingDepth(text string) int {
	m := numberingPrefixRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0
	}
	return strings.Count(m[1], ".") + 1
}

// isAllCaps reports whether the text is essentially all upper-case.
// Requires at least 3 cased letters; scripts without case never qualify.
func isAllCaps(text string) bool {
	upper := 0
	lower := 0
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}

// isTitleCase reports whether the text looks like a Title Case heading:
// at least two words, each starting with an upper-case letter or digit.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 || len([]rune(text)) < 5 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
