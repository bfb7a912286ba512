package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/strictness"
)

const pipelineJobJSON = `{
	"job_title": "Backend Engineer",
	"company": "Acme",
	"must_have": [
		{"category": "technical_skill", "description": "Go experience", "keywords": ["Go"]}
	],
	"nice_to_have": [
		{"category": "technical_skill", "description": "Kubernetes", "keywords": ["Kubernetes"], "specificity": "flexible"}
	],
	"ats_keywords": {"high_priority": ["Go"], "medium_priority": [], "contextual": []}
}`

const pipelineProfileJSON = `{
	"personal_info": {"name": "Dana Smith", "email": "dana@example.com"},
	"experience": [
		{
			"id": "exp_1",
			"company": "Initech",
			"title": "Software Engineer",
			"start_date": "2020-01",
			"end_date": "2023-06",
			"responsibilities": [
				{"original_text": "Built Go services", "extracted_facts": {"technologies": ["Go"]}}
			]
		}
	],
	"skills": {"explicitly_listed": ["Go"]}
}`

// routingClient answers the extraction prompts with canned documents and
// every text prompt with plain prose.
type routingClient struct{}

func (c *routingClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "We are hiring"):
		return pipelineJobJSON, nil
	case strings.Contains(prompt, "Dana Smith"):
		return pipelineProfileJSON, nil
	}
	return "", errors.New("unexpected JSON prompt")
}

func (c *routingClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	return "Experienced backend engineer focused on Go services.", nil
}

func (c *routingClient) Close() error { return nil }

type failingClient struct{}

func (c *failingClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("service unavailable")
}

func (c *failingClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("service unavailable")
}

func (c *failingClient) Close() error { return nil }

func TestRun_FullPipeline(t *testing.T) {
	var steps []string
	result, err := Run(context.Background(), &routingClient{}, RunOptions{
		JobDescription: "We are hiring a Backend Engineer to build Go services.",
		CVText:         "Dana Smith\nSoftware Engineer at Initech",
		Strictness:     strictness.Conservative,
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.TailoredCV)
	assert.Equal(t, "Dana Smith", result.TailoredCV.Header.Name)
	assert.Equal(t, "Software Engineer", result.TailoredCV.Header.Title)
	assert.NotZero(t, result.MatchScore.Score)

	require.NotNil(t, result.MappingSummary)
	assert.Equal(t, "1/1", result.MappingSummary.MustHaveCoverage)

	assert.Contains(t, steps, StepExtractJob)
	assert.Contains(t, steps, StepExtractCV)
	assert.Contains(t, steps, StepMapping)
	assert.Contains(t, steps, StepGeneration)
	assert.Contains(t, steps, StepQA)
	assert.Nil(t, result.CoverLetter)
}

func TestRun_CoverLetterRequested(t *testing.T) {
	result, err := Run(context.Background(), &routingClient{}, RunOptions{
		JobDescription: "We are hiring a Backend Engineer to build Go services.",
		CVText:         "Dana Smith\nSoftware Engineer at Initech",
		Strictness:     strictness.Conservative,
		CoverLetter:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, result.CoverLetter)
	assert.Contains(t, result.CoverLetter.Hook, "Backend Engineer")
}

func TestRun_ExtractionFailure(t *testing.T) {
	_, err := Run(context.Background(), &failingClient{}, RunOptions{
		JobDescription: "job text",
		CVText:         "cv text",
		Strictness:     strictness.Moderate,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}
