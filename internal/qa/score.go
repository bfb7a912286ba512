package qa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Score adjustment constants
const (
	quantifiedBonus     = 5
	quantifiedThreshold = 3
	keywordBonus        = 3
	criticalGapPenalty  = 10
	criticalGapCap      = 30
	reviewPenalty       = 5
	reviewThreshold     = 3
)

// Explanation score bands
const (
	strongMatchBand   = 80
	goodMatchBand     = 60
	moderateMatchBand = 40
)

// CalculateMatchScore applies bonuses and penalties to the mapping's overall
// score and produces the final, displayed match score with its breakdown.
func CalculateMatchScore(mapping *types.MappingResult, changes []types.ChangeLogEntry, borderline []types.BorderlineItem) types.MatchScore {
	score := mapping.OverallMatch.Score
	var bonuses, penalties []string

	// Bonus for quantified achievements aligned with the job
	quantified := 0
	for _, change := range changes {
		if change.Section == "experience" && containsDigit(change.New) {
			quantified++
		}
	}
	if quantified >= quantifiedThreshold {
		bonuses = append(bonuses, fmt.Sprintf("+%d for %d quantified achievements", quantifiedBonus, quantified))
		score += quantifiedBonus
	}

	// Bonus for keyword integration
	keywordChanges := 0
	for _, change := range changes {
		if change.ChangeType == types.ChangeAddKeyword || strings.Contains(strings.ToLower(change.Justification), "keyword") {
			keywordChanges++
		}
	}
	if keywordChanges > 0 {
		bonuses = append(bonuses, fmt.Sprintf("+%d for keyword integration in %d bullets", keywordBonus, keywordChanges))
		score += keywordBonus
	}

	// Penalty for critical gaps
	criticalGaps := len(mapping.OverallMatch.CriticalGaps)
	if criticalGaps > 0 {
		penalty := criticalGaps * criticalGapPenalty
		if penalty > criticalGapCap {
			penalty = criticalGapCap
		}
		penalties = append(penalties, fmt.Sprintf("-%d for %d critical gaps", penalty, criticalGaps))
		score -= penalty
	}

	// Penalty for too many items requiring review
	if len(borderline) > reviewThreshold {
		penalties = append(penalties, fmt.Sprintf("-%d for %d items requiring review", reviewPenalty, len(borderline)))
		score -= reviewPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return types.MatchScore{
		Score: score,
		Breakdown: types.MatchScoreBreakdown{
			MustHaveComponent:   coverageComponent(mapping.OverallMatch.MustHaveCoverage, 70),
			NiceToHaveComponent: coverageComponent(mapping.OverallMatch.NiceToHaveCoverage, 30),
			Bonuses:             bonuses,
			Penalties:           penalties,
		},
		Explanation: explain(score, mapping.OverallMatch.CriticalGaps),
	}
}

// coverageComponent recomputes a weighted component from an "m/t" coverage
// string. Empty groups earn the full weight.
func coverageComponent(coverage string, weight float64) float64 {
	parts := strings.SplitN(coverage, "/", 2)
	if len(parts) != 2 {
		return weight
	}
	matched, err1 := strconv.Atoi(parts[0])
	total, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || total == 0 {
		return weight
	}
	return float64(matched) / float64(total) * weight
}

// explain picks the score-band explanation and appends up to three critical gaps
func explain(score int, criticalGaps []string) string {
	var explanation string
	switch {
	case score >= strongMatchBand:
		explanation = "Strong match - candidate meets most requirements"
	case score >= goodMatchBand:
		explanation = "Good match - candidate meets core requirements with some gaps"
	case score >= moderateMatchBand:
		explanation = "Moderate match - significant gaps but transferable experience"
	default:
		explanation = "Low match - consider if this role is appropriate"
	}

	if len(criticalGaps) > 0 {
		limit := len(criticalGaps)
		if limit > 3 {
			limit = 3
		}
		explanation += fmt.Sprintf(". Critical gaps: %s", strings.Join(criticalGaps[:limit], ", "))
	}

	return explanation
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
