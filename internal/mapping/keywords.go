package mapping

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/types"
)

// KeywordPriority is the closed set of priority tiers a keyword can belong to
type KeywordPriority string

// Keyword priority tiers; None is returned for keywords outside every ATS tier
const (
	KeywordHigh       KeywordPriority = "high"
	KeywordMedium     KeywordPriority = "medium"
	KeywordContextual KeywordPriority = "contextual"
	KeywordNone       KeywordPriority = "none"
)

// PriorityOf returns the ATS priority tier of a keyword. Higher tiers win when
// a keyword appears in more than one. Total over all inputs.
func PriorityOf(reqs *types.JobRequirements, keyword string) KeywordPriority {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return KeywordNone
	}

	if containsKeyword(reqs.ATSKeywords.HighPriority, kw) {
		return KeywordHigh
	}
	if containsKeyword(reqs.ATSKeywords.MediumPriority, kw) {
		return KeywordMedium
	}
	if containsKeyword(reqs.ATSKeywords.Contextual, kw) {
		return KeywordContextual
	}
	return KeywordNone
}

// analyzeKeywordCoverage classifies every ATS keyword as present in the
// profile or genuinely missing. The missing-but-addressable bucket exists in
// the data model but is intentionally never populated.
func analyzeKeywordCoverage(reqs *types.JobRequirements, profile *types.CandidateProfile) types.KeywordCoverage {
	all := make(map[string]string) // lowercased -> original casing, first seen wins
	var order []string
	for _, tier := range [][]string{
		reqs.ATSKeywords.HighPriority,
		reqs.ATSKeywords.MediumPriority,
		reqs.ATSKeywords.Contextual,
	} {
		for _, kw := range tier {
			key := strings.ToLower(strings.TrimSpace(kw))
			if key == "" {
				continue
			}
			if _, ok := all[key]; !ok {
				all[key] = kw
				order = append(order, key)
			}
		}
	}
	sort.Strings(order)

	profileSkills := make(map[string]bool)
	for _, skill := range evidence.AllSkills(profile) {
		profileSkills[strings.ToLower(skill)] = true
	}

	coverage := types.KeywordCoverage{
		PresentInCV:           []string{},
		MissingButAddressable: []string{},
		GenuinelyMissing:      []string{},
	}

	for _, key := range order {
		original := all[key]
		if profileSkills[key] || len(evidence.Find(profile, original)) > 0 {
			coverage.PresentInCV = append(coverage.PresentInCV, original)
		} else {
			coverage.GenuinelyMissing = append(coverage.GenuinelyMissing, original)
		}
	}

	return coverage
}

// containsKeyword reports whether list contains kw case-insensitively.
// kw must already be lowercased and trimmed.
func containsKeyword(list []string, kw string) bool {
	for _, item := range list {
		if strings.ToLower(strings.TrimSpace(item)) == kw {
			return true
		}
	}
	return false
}
