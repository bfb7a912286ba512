package mapping

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

// stubFinder returns canned transferable skills per requirement description
type stubFinder struct {
	results map[string][]TransferableSkill
	err     error
	calls   atomic.Int32
}

func (f *stubFinder) FindTransferable(_ context.Context, req types.Requirement, _ []string) ([]TransferableSkill, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[req.Description], nil
}

func intPtr(n int) *int { return &n }

func mapperProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		PersonalInfo: types.PersonalInfo{Name: "Dana Smith"},
		Skills: types.Skills{
			ExplicitlyListed: []string{"Go", "PostgreSQL"},
		},
		Experience: []types.Experience{{
			ID:             "exp_1",
			Company:        "Acme",
			Title:          "Backend Engineer",
			DurationMonths: 30,
			Responsibilities: []types.ResponsibilityFact{
				{OriginalText: "Built Go microservices for payment processing"},
			},
		}},
	}
}

func TestMap_NilInputs(t *testing.T) {
	m := &Mapper{}

	_, err := m.Map(context.Background(), nil, mapperProfile(), strictness.Moderate)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = m.Map(context.Background(), &types.JobRequirements{}, nil, strictness.Moderate)
	assert.ErrorAs(t, err, &inputErr)
}

func TestMap_OneEntryPerRequirementInOrder(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "Go experience", Keywords: []string{"Go"}},
			{Category: types.CategoryTechnicalSkill, Description: "Python required", Keywords: []string{"Python"}, Specificity: types.SpecificityExact},
		},
		NiceToHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "SQL databases", Keywords: []string{"PostgreSQL"}},
		},
	}

	m := &Mapper{}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	require.Len(t, result.MappingTable, 3)
	assert.Equal(t, "Go experience", result.MappingTable[0].Requirement.Text)
	assert.Equal(t, types.PriorityMustHave, result.MappingTable[0].Requirement.Priority)
	assert.Equal(t, "Python required", result.MappingTable[1].Requirement.Text)
	assert.Equal(t, "SQL databases", result.MappingTable[2].Requirement.Text)
	assert.Equal(t, types.PriorityNiceToHave, result.MappingTable[2].Requirement.Priority)
}

func TestMap_UnmatchedExactRequirementIsCriticalGap(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "Python required", Keywords: []string{"Python"}, Specificity: types.SpecificityExact},
		},
	}

	m := &Mapper{}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	entry := result.MappingTable[0]
	assert.Empty(t, entry.Evidence)
	assert.True(t, entry.GapAnalysis.HasGap)
	assert.Equal(t, types.SeverityCritical, entry.GapAnalysis.Severity)
	assert.Equal(t, []string{"Python required"}, result.OverallMatch.CriticalGaps)
}

func TestMap_PartialExperienceYears(t *testing.T) {
	// 30 months = 2.5 years against a 3-year requirement: >= 70% is partial
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryExperience, Description: "3+ years of backend experience", YearsRequired: intPtr(3)},
		},
	}

	m := &Mapper{}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	entry := result.MappingTable[0]
	require.Len(t, entry.Evidence, 1)
	assert.Equal(t, 60, entry.Evidence[0].RelevanceScore)
	assert.Equal(t, types.MatchPartial, entry.Evidence[0].MatchType)
	assert.Equal(t, "Total experience: 2.5 years (requirement: 3)", entry.Evidence[0].OriginalText)
	assert.Equal(t, types.SeverityMinor, entry.GapAnalysis.Severity)
	require.Len(t, entry.GapAnalysis.MitigationOptions, 1)
	assert.Equal(t, types.MitigationReframeExisting, entry.GapAnalysis.MitigationOptions[0].Strategy)
}

func TestMap_FullExperienceYears(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryExperience, Description: "2+ years of experience", YearsRequired: intPtr(2)},
		},
	}

	m := &Mapper{}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	entry := result.MappingTable[0]
	require.Len(t, entry.Evidence, 1)
	assert.Equal(t, 100, entry.Evidence[0].RelevanceScore)
	assert.Equal(t, types.MatchDirect, entry.Evidence[0].MatchType)
	assert.Equal(t, "Total experience: 2.5 years", entry.Evidence[0].OriginalText)
	assert.False(t, entry.GapAnalysis.HasGap)
}

func TestMap_DedupesEvidenceByText(t *testing.T) {
	// Both keywords hit the same responsibility text; only one item survives
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "Payments domain", Keywords: []string{"payment", "microservices"}},
		},
	}

	m := &Mapper{}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	require.Len(t, result.MappingTable[0].Evidence, 1)
	assert.Equal(t, "Built Go microservices for payment processing", result.MappingTable[0].Evidence[0].OriginalText)
}

func TestMap_TransferableDiscovery(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "MySQL administration", Keywords: []string{"MySQL"}},
		},
	}
	finder := &stubFinder{results: map[string][]TransferableSkill{
		"MySQL administration": {{CandidateSkill: "PostgreSQL", RelevanceExplanation: "Relational database administration transfers directly"}},
	}}

	m := &Mapper{Discovery: finder}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	entry := result.MappingTable[0]
	require.Len(t, entry.Evidence, 1)
	assert.Equal(t, 50, entry.Evidence[0].RelevanceScore)
	assert.Equal(t, types.MatchTransferable, entry.Evidence[0].MatchType)
	assert.Equal(t, "Listed in skills section: PostgreSQL (Transferable: Relational database administration transfers directly)", entry.Evidence[0].OriginalText)
	assert.Equal(t, int32(1), finder.calls.Load())
}

func TestMap_DiscoverySkippedWhenDirectEvidenceExists(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "Go experience", Keywords: []string{"Go"}},
		},
	}
	finder := &stubFinder{}

	m := &Mapper{Discovery: finder}
	_, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	assert.Equal(t, int32(0), finder.calls.Load())
}

func TestMap_DiscoverySkippedUnderConservative(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "MySQL administration", Keywords: []string{"MySQL"}},
		},
	}
	finder := &stubFinder{}

	m := &Mapper{Discovery: finder}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Conservative)
	require.NoError(t, err)

	assert.Equal(t, int32(0), finder.calls.Load())
	assert.Empty(t, result.MappingTable[0].Evidence)
}

func TestMap_DiscoveryFailureDegradesToNoEvidence(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "MySQL administration", Keywords: []string{"MySQL"}},
		},
	}
	finder := &stubFinder{err: errors.New("rate limited")}

	m := &Mapper{Discovery: finder}
	result, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	entry := result.MappingTable[0]
	assert.Empty(t, entry.Evidence)
	assert.True(t, entry.GapAnalysis.HasGap)
}

func TestMap_Deterministic(t *testing.T) {
	reqs := &types.JobRequirements{
		JobTitle: "Backend Engineer",
		MustHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "Go experience", Keywords: []string{"Go"}},
			{Category: types.CategoryExperience, Description: "2+ years", YearsRequired: intPtr(2)},
		},
		NiceToHave: []types.Requirement{
			{Category: types.CategoryTechnicalSkill, Description: "SQL databases", Keywords: []string{"PostgreSQL"}},
		},
		ATSKeywords: types.ATSKeywords{HighPriority: []string{"Go", "Kubernetes"}},
	}

	m := &Mapper{}
	first, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)
	second, err := m.Map(context.Background(), reqs, mapperProfile(), strictness.Moderate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
