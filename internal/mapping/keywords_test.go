package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/types"
)

func keywordReqs() *types.JobRequirements {
	return &types.JobRequirements{
		JobTitle: "Backend Engineer",
		ATSKeywords: types.ATSKeywords{
			HighPriority:   []string{"Go", "Kubernetes"},
			MediumPriority: []string{"PostgreSQL", "go"},
			Contextual:     []string{"agile"},
		},
	}
}

func TestPriorityOf_TierOrder(t *testing.T) {
	reqs := keywordReqs()

	assert.Equal(t, KeywordHigh, PriorityOf(reqs, "go"))
	assert.Equal(t, KeywordMedium, PriorityOf(reqs, "postgresql"))
	assert.Equal(t, KeywordContextual, PriorityOf(reqs, "Agile"))
	assert.Equal(t, KeywordNone, PriorityOf(reqs, "Rust"))
	assert.Equal(t, KeywordNone, PriorityOf(reqs, ""))
}

func TestPriorityOf_HigherTierWins(t *testing.T) {
	// "go" appears in both high and medium; high wins
	assert.Equal(t, KeywordHigh, PriorityOf(keywordReqs(), "GO"))
}

func TestAnalyzeKeywordCoverage_Classification(t *testing.T) {
	profile := &types.CandidateProfile{
		Skills: types.Skills{ExplicitlyListed: []string{"Go", "PostgreSQL"}},
	}

	coverage := analyzeKeywordCoverage(keywordReqs(), profile)

	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, coverage.PresentInCV)
	assert.ElementsMatch(t, []string{"Kubernetes", "agile"}, coverage.GenuinelyMissing)
	assert.Empty(t, coverage.MissingButAddressable)
}

func TestAnalyzeKeywordCoverage_DeterministicOrder(t *testing.T) {
	profile := &types.CandidateProfile{}

	first := analyzeKeywordCoverage(keywordReqs(), profile)
	second := analyzeKeywordCoverage(keywordReqs(), profile)

	assert.Equal(t, first, second)
	// sorted by lowercased keyword
	assert.Equal(t, []string{"agile", "Go", "Kubernetes", "PostgreSQL"}, first.GenuinelyMissing)
}

func TestAnalyzeKeywordCoverage_EvidenceHitCountsAsPresent(t *testing.T) {
	profile := &types.CandidateProfile{
		Experience: []types.Experience{{
			ID: "exp_1",
			Responsibilities: []types.ResponsibilityFact{
				{OriginalText: "Deployed workloads to Kubernetes clusters"},
			},
		}},
	}

	coverage := analyzeKeywordCoverage(keywordReqs(), profile)

	assert.Contains(t, coverage.PresentInCV, "Kubernetes")
}
