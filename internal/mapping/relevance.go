package mapping

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Relevance scoring constants. These values are a fixed contract; the gap
// analyzer thresholds below depend on them.
const (
	baseRelevance      = 70
	keywordInTextBonus = 20
	experienceBonus    = 10
	certificationBonus = 5

	transferableRelevance = 50

	fullExperienceRelevance    = 100
	partialExperienceRelevance = 60
	// partialExperienceRatio is the fraction of required years that still
	// counts as a partial match
	partialExperienceRatio = 0.7
)

// relevanceScore computes the relevance of a direct locator hit for a keyword.
// Scores are clamped to [0,100] at the point of computation.
func relevanceScore(keyword string, cand evidence.Candidate) int {
	score := baseRelevance

	if strings.Contains(strings.ToLower(cand.Text), strings.ToLower(keyword)) {
		score += keywordInTextBonus
	}

	switch cand.SourceType {
	case types.SourceExperience:
		score += experienceBonus
	case types.SourceCertification:
		score += certificationBonus
	}

	return clampScore(score)
}

// clampScore clamps a score into [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
