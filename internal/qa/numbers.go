package qa

import (
	"regexp"
	"strconv"

	"github.com/jonathan/cv-tailor/internal/types"
)

// metricTolerance is the relative tolerance for numeric comparison: a
// tailored value within ±10% of some original value is accepted.
const metricTolerance = 0.1

// numberPatterns match the four token shapes the exaggeration check tracks:
// percentages, currency amounts, bare integers (optionally "+"-suffixed),
// and k/m-abbreviated numbers.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$[\d,]+`),
	regexp.MustCompile(`\d+\+?`),
	regexp.MustCompile(`\d+[kKmM]`),
}

// nonNumeric strips everything but digits and decimal points
var nonNumeric = regexp.MustCompile(`[^\d.]`)

// extractNumberTokens returns every number-like token in text, pattern by pattern
func extractNumberTokens(text string) []string {
	var tokens []string
	for _, pattern := range numberPatterns {
		tokens = append(tokens, pattern.FindAllString(text, -1)...)
	}
	return tokens
}

// originalNumberTokens collects every number-like token from the original
// profile's responsibility and achievement texts, plus quantified metric values.
func originalNumberTokens(profile *types.CandidateProfile) map[string]bool {
	tokens := make(map[string]bool)
	for _, exp := range profile.Experience {
		for _, resp := range exp.Responsibilities {
			for _, token := range extractNumberTokens(resp.OriginalText) {
				tokens[token] = true
			}
		}
		for _, ach := range exp.Achievements {
			for _, token := range extractNumberTokens(ach.OriginalText) {
				tokens[token] = true
			}
			if ach.Metrics != nil {
				tokens[ach.Metrics.Value] = true
			}
		}
	}
	return tokens
}

// numberIsSupported reports whether a tailored token is backed by the
// original tokens: identical string, or numeric value within tolerance of
// some original value. Unparsable tokens are assumed valid.
func numberIsSupported(token string, originals map[string]bool) bool {
	if originals[token] {
		return true
	}

	value, ok := parseNumeric(token)
	if !ok {
		return true
	}

	for original := range originals {
		origValue, ok := parseNumeric(original)
		if !ok {
			continue
		}
		if origValue*(1-metricTolerance) <= value && value <= origValue*(1+metricTolerance) {
			return true
		}
	}
	return false
}

func parseNumeric(token string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(token, "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
