package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_JobRequirementsValid(t *testing.T) {
	doc := []byte(`{
		"job_title": "Backend Engineer",
		"company": "Acme",
		"must_have": [
			{"category": "technical_skill", "description": "Go experience", "keywords": ["Go"], "specificity": "flexible"}
		],
		"nice_to_have": []
	}`)

	assert.NoError(t, Validate("job_requirements", doc))
}

func TestValidate_JobRequirementsMissingTitle(t *testing.T) {
	doc := []byte(`{"must_have": [], "nice_to_have": []}`)

	err := Validate("job_requirements", doc)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidate_JobRequirementsBadCategory(t *testing.T) {
	doc := []byte(`{
		"job_title": "Backend Engineer",
		"must_have": [
			{"category": "wizardry", "description": "Spells"}
		],
		"nice_to_have": []
	}`)

	var validationErr *ValidationError
	assert.ErrorAs(t, Validate("job_requirements", doc), &validationErr)
}

func TestValidate_CandidateProfileValid(t *testing.T) {
	doc := []byte(`{
		"personal_info": {"name": "Dana Smith"},
		"experience": [
			{
				"id": "exp_1",
				"company": "Acme",
				"title": "Backend Engineer",
				"start_date": "2020-01",
				"end_date": "present",
				"duration_months": 30,
				"responsibilities": [
					{"original_text": "Built Go services", "extracted_facts": {"technologies": ["Go"]}}
				],
				"achievements": [
					{"original_text": "Cut latency by 40%", "quantified": true, "metrics": {"type": "percentage", "value": "40%", "context": "latency"}}
				]
			}
		],
		"skills": {"explicitly_listed": ["Go"], "inferred_from_experience": []}
	}`)

	assert.NoError(t, Validate("candidate_profile", doc))
}

func TestValidate_CandidateProfileMissingName(t *testing.T) {
	doc := []byte(`{"personal_info": {}, "experience": [], "skills": {}}`)

	var validationErr *ValidationError
	assert.ErrorAs(t, Validate("candidate_profile", doc), &validationErr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, Validate("nonexistent", []byte(`{}`)), &loadErr)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate("job_requirements", []byte(`{not json`))

	assert.Error(t, err)
}
