package qa

import (
	"fmt"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Warning thresholds applied after scoring
const (
	lowScoreWarningThreshold   = 50
	manyBorderlineWarningLimit = 5
)

// Report is the combined outcome of the quality guardrail
type Report struct {
	Valid      bool
	Errors     []string
	Warnings   []string
	Borderline []types.BorderlineItem
	MatchScore types.MatchScore
}

// RunQualityChecks runs the full guardrail: provenance validation,
// exaggeration detection, and final score adjustment. Any fabrication error
// makes the result invalid regardless of warning count. The returned
// borderline list includes detected exaggerations appended to the input.
func RunQualityChecks(
	original *types.CandidateProfile,
	tailored *types.TailoredCV,
	mapping *types.MappingResult,
	changes []types.ChangeLogEntry,
	borderline []types.BorderlineItem,
) Report {
	validator := NewValidator(original, tailored)
	isValid, errors, warnings := validator.ValidateAll()

	borderline = append(borderline, DetectExaggeration(changes)...)

	matchScore := CalculateMatchScore(mapping, changes, borderline)

	if matchScore.Score < lowScoreWarningThreshold {
		warnings = append(warnings, "LOW_MATCH_SCORE: Match score below 50%, consider if role is appropriate")
	}
	if len(borderline) > manyBorderlineWarningLimit {
		warnings = append(warnings, fmt.Sprintf("MANY_BORDERLINE_ITEMS: %d items require user review", len(borderline)))
	}

	return Report{
		Valid:      isValid,
		Errors:     errors,
		Warnings:   warnings,
		Borderline: borderline,
		MatchScore: matchScore,
	}
}
