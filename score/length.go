package score

import "strings"

// LengthScore scores text length against the heading length band. The
// score peaks for text inside [PeakMinLength, PeakMaxLength] runes and
// at most PeakMaxWords words, decays linearly outside the band, and is
// floored at zero beyond HardMaxLength runes.
func (s *Scorer) LengthScore(text string) float64 {
	length := len([]rune(strings.TrimSpace(text)))
	if length < 1 || length > s.config.HardMaxLength {
		return 0
	}

	charScore := 1.0
	switch {
	case length < s.config.PeakMinLength:
		charScore = float64(length) / float64(s.config.PeakMinLength)
	case length > s.config.PeakMaxLength:
		decay := float64(length-s.config.PeakMaxLength) /
			float64(s.config.HardMaxLength-s.config.PeakMaxLength)
		charScore = 1.0 - decay
	}

	words := len(strings.Fields(text))
	wordScore := 1.0
	if words == 0 {
		wordScore = 0
	} else if words > s.config.PeakMaxWords {
		wordScore = 1.0 - float64(words-s.config.PeakMaxWords)/float64(s.config.PeakMaxWords)
	}

	return clamp01(min(charScore, wordScore))
}
