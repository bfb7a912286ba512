package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func TestRunQualityChecks_CleanRun(t *testing.T) {
	report := RunQualityChecks(originalProfile(), validTailored(), mappingWithScore(75, nil), nil, nil)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 75, report.MatchScore.Score)
}

func TestRunQualityChecks_FabricationInvalidates(t *testing.T) {
	tailored := validTailored()
	tailored.Skills.Primary = append(tailored.Skills.Primary, "Rust")

	report := RunQualityChecks(originalProfile(), tailored, mappingWithScore(75, nil), nil, nil)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "FABRICATION")
}

func TestRunQualityChecks_AppendsDetectedExaggerations(t *testing.T) {
	changes := []types.ChangeLogEntry{{
		ChangeType: types.ChangeRewrite,
		Original:   "Assisted with deployments",
		New:        "Led deployments",
	}}

	report := RunQualityChecks(originalProfile(), validTailored(), mappingWithScore(75, nil), changes, nil)

	require.Len(t, report.Borderline, 1)
	assert.Equal(t, "reframed_significantly", report.Borderline[0].Category)
}

func TestRunQualityChecks_LowScoreWarning(t *testing.T) {
	report := RunQualityChecks(originalProfile(), validTailored(), mappingWithScore(30, nil), nil, nil)

	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "LOW_MATCH_SCORE")
}

func TestRunQualityChecks_ManyBorderlineWarning(t *testing.T) {
	borderline := make([]types.BorderlineItem, 6)

	report := RunQualityChecks(originalProfile(), validTailored(), mappingWithScore(75, nil), nil, borderline)

	found := false
	for _, warning := range report.Warnings {
		if warning == "MANY_BORDERLINE_ITEMS: 6 items require user review" {
			found = true
		}
	}
	assert.True(t, found)
}
