package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/types"
)

// stubClient returns a canned response for every call
type stubClient struct {
	response string
	err      error
}

func (c *stubClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubClient) Close() error { return nil }

const validJobJSON = `{
	"job_title": "Backend Engineer",
	"company": "Acme",
	"must_have": [
		{"category": "technical_skill", "description": "Go experience", "keywords": ["Go", "gRPC"]}
	],
	"nice_to_have": [
		{"category": "technical_skill", "description": "Kubernetes", "keywords": ["Kubernetes"], "specificity": "flexible"}
	],
	"ats_keywords": {"high_priority": [], "medium_priority": [], "contextual": []}
}`

func TestExtractJobRequirements_Valid(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: validJobJSON}}

	reqs, err := extractor.ExtractJobRequirements(context.Background(), "We need a backend engineer...")

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", reqs.JobTitle)
	require.Len(t, reqs.MustHave, 1)
	assert.Equal(t, types.CategoryTechnicalSkill, reqs.MustHave[0].Category)
}

func TestExtractJobRequirements_DefaultsSpecificity(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: validJobJSON}}

	reqs, err := extractor.ExtractJobRequirements(context.Background(), "job text")

	require.NoError(t, err)
	assert.Equal(t, types.SpecificityFlexible, reqs.MustHave[0].Specificity)
}

func TestExtractJobRequirements_BackfillsATSKeywords(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: validJobJSON}}

	reqs, err := extractor.ExtractJobRequirements(context.Background(), "job text")

	require.NoError(t, err)
	// empty high-priority tier is filled from must-have keywords
	assert.Equal(t, []string{"Go", "gRPC"}, reqs.ATSKeywords.HighPriority)
}

func TestExtractJobRequirements_EmptyInput(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: validJobJSON}}

	_, err := extractor.ExtractJobRequirements(context.Background(), "   ")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestExtractJobRequirements_LLMFailure(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{err: errors.New("quota exceeded")}}

	_, err := extractor.ExtractJobRequirements(context.Background(), "job text")

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestExtractJobRequirements_NoJSONInResponse(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: "I cannot help with that"}}

	_, err := extractor.ExtractJobRequirements(context.Background(), "job text")

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExtractJobRequirements_SchemaMismatch(t *testing.T) {
	extractor := &JobExtractor{Client: &stubClient{response: `{"company": "Acme"}`}}

	_, err := extractor.ExtractJobRequirements(context.Background(), "job text")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
