package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/types"
)

func TestRelevanceScore_SkillSectionHit(t *testing.T) {
	cand := evidence.Candidate{
		SourceType: types.SourceSkill,
		Text:       "Listed in skills section: Go",
	}

	// base 70 + 20 keyword in text
	assert.Equal(t, 90, relevanceScore("Go", cand))
}

func TestRelevanceScore_ExperienceWithKeywordCaps(t *testing.T) {
	cand := evidence.Candidate{
		SourceType: types.SourceExperience,
		Text:       "Built Go microservices",
	}

	// base 70 + 20 keyword + 10 experience = 100
	assert.Equal(t, 100, relevanceScore("Go", cand))
}

func TestRelevanceScore_ExperienceWithoutKeywordText(t *testing.T) {
	cand := evidence.Candidate{
		SourceType: types.SourceExperience,
		Text:       "Maintained payment services",
	}

	// base 70 + 10 experience, keyword not literally present
	assert.Equal(t, 80, relevanceScore("Kafka", cand))
}

func TestRelevanceScore_CertificationBonus(t *testing.T) {
	cand := evidence.Candidate{
		SourceType: types.SourceCertification,
		Text:       "AWS Solutions Architect from Amazon",
	}

	// base 70 + 20 keyword + 5 certification
	assert.Equal(t, 95, relevanceScore("AWS", cand))
}

func TestClampScore_Bounds(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(140))
	assert.Equal(t, 55, clampScore(55))
}
