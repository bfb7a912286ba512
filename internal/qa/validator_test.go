package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func originalProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		PersonalInfo: types.PersonalInfo{Name: "Dana Smith"},
		Skills: types.Skills{
			ExplicitlyListed: []string{"Go", "PostgreSQL"},
			InferredFromExperience: []types.InferredSkill{
				{Skill: "Kubernetes", EvidenceSource: "exp_1"},
			},
		},
		Experience: []types.Experience{{
			ID:      "exp_1",
			Company: "Acme",
			Title:   "Backend Engineer",
			Responsibilities: []types.ResponsibilityFact{
				{
					OriginalText:   "Improved throughput by 30% using Kafka",
					ExtractedFacts: types.ExtractedFacts{Technologies: []string{"Kafka"}},
				},
			},
			Achievements: []types.Achievement{
				{OriginalText: "Cut costs by $40,000 annually", Quantified: true},
			},
		}},
		Projects: []types.Project{
			{Name: "homelab", Technologies: []string{"Prometheus"}},
		},
	}
}

func validTailored() *types.TailoredCV {
	return &types.TailoredCV{
		Header: types.TailoredHeader{Name: "Dana Smith", Title: "Backend Engineer"},
		Experience: []types.TailoredExperience{{
			Company: "Acme",
			Title:   "Backend Engineer",
			Bullets: []types.TailoredBullet{
				{Text: "Improved throughput by 30% using Kafka"},
			},
		}},
		Skills: types.TailoredSkills{
			Primary: []string{"Go", "Kubernetes"},
			Tools:   []string{"Prometheus"},
		},
	}
}

func TestValidateAll_CleanDocumentPasses(t *testing.T) {
	validator := NewValidator(originalProfile(), validTailored())
	valid, errors, warnings := validator.ValidateAll()

	assert.True(t, valid)
	assert.Empty(t, errors)
	assert.Empty(t, warnings)
	assert.NoError(t, validator.Err())
}

func TestValidateAll_FabricatedCompany(t *testing.T) {
	tailored := validTailored()
	tailored.Experience = append(tailored.Experience, types.TailoredExperience{Company: "Globex"})

	validator := NewValidator(originalProfile(), tailored)
	valid, errors, _ := validator.ValidateAll()

	assert.False(t, valid)
	require.Len(t, errors, 1)
	assert.Equal(t, "FABRICATION: Company 'Globex' not found in original CV", errors[0])

	var fabErr *FabricationError
	assert.ErrorAs(t, validator.Err(), &fabErr)
}

func TestValidateAll_FabricatedSkill(t *testing.T) {
	tailored := validTailored()
	tailored.Skills.Primary = append(tailored.Skills.Primary, "Rust")

	validator := NewValidator(originalProfile(), tailored)
	valid, errors, _ := validator.ValidateAll()

	assert.False(t, valid)
	require.Len(t, errors, 1)
	assert.Equal(t, "FABRICATION: Skill 'rust' not evidenced in original CV", errors[0])
}

func TestValidateAll_FabricatedSkillFlaggedOnce(t *testing.T) {
	tailored := validTailored()
	tailored.Skills.Primary = append(tailored.Skills.Primary, "Rust")
	tailored.Skills.Tools = append(tailored.Skills.Tools, "rust")

	validator := NewValidator(originalProfile(), tailored)
	_, errors, _ := validator.ValidateAll()

	assert.Len(t, errors, 1)
}

func TestValidateAll_SkillsFromExperienceTechnologiesAllowed(t *testing.T) {
	tailored := validTailored()
	tailored.Skills.Secondary = []string{"Kafka"}

	validator := NewValidator(originalProfile(), tailored)
	valid, _, _ := validator.ValidateAll()

	assert.True(t, valid)
}

func TestValidateAll_MetricWithinToleranceAccepted(t *testing.T) {
	tailored := validTailored()
	// 32% is within ±10% of the original 30%
	tailored.Experience[0].Bullets = []types.TailoredBullet{
		{Text: "Improved throughput by 32% using Kafka"},
	}

	validator := NewValidator(originalProfile(), tailored)
	valid, _, warnings := validator.ValidateAll()

	assert.True(t, valid)
	assert.Empty(t, warnings)
}

func TestValidateAll_InflatedMetricWarns(t *testing.T) {
	tailored := validTailored()
	tailored.Experience[0].Bullets = []types.TailoredBullet{
		{Text: "Improved throughput by 50% using Kafka"},
	}

	validator := NewValidator(originalProfile(), tailored)
	valid, _, warnings := validator.ValidateAll()

	// metric checks warn, they do not invalidate
	assert.True(t, valid)
	assert.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "POSSIBLE EXAGGERATION")
	assert.Contains(t, warnings[0], "50%")
}

func TestValidateAll_TitleInflationWarns(t *testing.T) {
	tailored := validTailored()
	tailored.Header.Title = "Senior Backend Engineer"

	validator := NewValidator(originalProfile(), tailored)
	valid, _, warnings := validator.ValidateAll()

	assert.True(t, valid)
	require.Len(t, warnings, 1)
	assert.Equal(t, "TITLE CHANGE: Added 'senior' to title - verify this is accurate", warnings[0])
}

func TestValidateAll_TitleMarkerAlreadyPresent(t *testing.T) {
	original := originalProfile()
	original.Experience[0].Title = "Senior Backend Engineer"
	tailored := validTailored()
	tailored.Header.Title = "Senior Backend Engineer"

	validator := NewValidator(original, tailored)
	_, _, warnings := validator.ValidateAll()

	assert.Empty(t, warnings)
}
