// Package extraction turns unstructured job postings and CV text into the
// typed documents the mapping and generation stages work on. Extraction is
// the only stage allowed to call the LLM with raw user input.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// JobExtractor extracts structured requirements from a job description
type JobExtractor struct {
	Client llm.Client
}

// ExtractJobRequirements parses a raw job description into structured
// requirements, validates the result against the job_requirements schema,
// and backfills ATS keywords when the model leaves them empty.
func (e *JobExtractor) ExtractJobRequirements(ctx context.Context, jobDescription string) (*types.JobRequirements, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Stage: "job", Message: "job description is empty"}
	}

	template, err := prompts.Get("extraction.json", "extract-job-requirements")
	if err != nil {
		return nil, &ParseError{Stage: "job", Message: "prompt template missing", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
	})

	raw, err := e.Client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Stage: "job", Message: "LLM request failed", Cause: err}
	}

	doc := llm.ExtractJSONObject(raw)
	if doc == "" {
		return nil, &ParseError{Stage: "job", Message: "response contained no JSON object"}
	}

	if err := schemas.Validate("job_requirements", []byte(doc)); err != nil {
		return nil, &ValidationError{Stage: "job", Message: "schema mismatch", Cause: err}
	}

	var reqs types.JobRequirements
	if err := json.Unmarshal([]byte(doc), &reqs); err != nil {
		return nil, &ParseError{Stage: "job", Message: "unmarshal failed", Cause: err}
	}

	normalizeJobRequirements(&reqs)

	if err := validate.Struct(&reqs); err != nil {
		return nil, &ValidationError{Stage: "job", Message: "struct validation failed", Cause: err}
	}

	return &reqs, nil
}

// normalizeJobRequirements fills gaps the model commonly leaves: missing
// specificity defaults to flexible, and empty high-priority ATS keywords
// are backfilled from must-have then nice-to-have requirement keywords.
func normalizeJobRequirements(reqs *types.JobRequirements) {
	defaultSpecificity(reqs.MustHave)
	defaultSpecificity(reqs.NiceToHave)
	defaultSpecificity(reqs.Inferred)

	if len(reqs.ATSKeywords.HighPriority) == 0 {
		seen := make(map[string]bool)
		for _, req := range reqs.MustHave {
			for _, kw := range req.Keywords {
				key := strings.ToLower(kw)
				if kw != "" && !seen[key] {
					seen[key] = true
					reqs.ATSKeywords.HighPriority = append(reqs.ATSKeywords.HighPriority, kw)
				}
			}
		}
		if len(reqs.ATSKeywords.HighPriority) == 0 {
			for _, req := range reqs.NiceToHave {
				for _, kw := range req.Keywords {
					key := strings.ToLower(kw)
					if kw != "" && !seen[key] {
						seen[key] = true
						reqs.ATSKeywords.HighPriority = append(reqs.ATSKeywords.HighPriority, kw)
					}
				}
			}
		}
	}
}

func defaultSpecificity(reqs []types.Requirement) {
	for i := range reqs {
		if reqs[i].Specificity == "" {
			reqs[i].Specificity = types.SpecificityFlexible
		}
	}
}
