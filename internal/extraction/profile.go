package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/types"
)

// ProfileExtractor extracts a structured candidate profile from raw CV text
type ProfileExtractor struct {
	Client llm.Client
}

// ExtractCandidateProfile parses raw CV text into a structured profile.
// Experience entries without an id get a generated one; inferred skills whose
// evidence_source does not reference a real experience id are dropped so the
// profile never carries dangling evidence.
func (e *ProfileExtractor) ExtractCandidateProfile(ctx context.Context, cvText string) (*types.CandidateProfile, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, &ValidationError{Stage: "cv", Message: "CV text is empty"}
	}

	template, err := prompts.Get("extraction.json", "extract-cv-facts")
	if err != nil {
		return nil, &ParseError{Stage: "cv", Message: "prompt template missing", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"CVText": cvText,
	})

	raw, err := e.Client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Stage: "cv", Message: "LLM request failed", Cause: err}
	}

	doc := llm.ExtractJSONObject(raw)
	if doc == "" {
		return nil, &ParseError{Stage: "cv", Message: "response contained no JSON object"}
	}

	if err := schemas.Validate("candidate_profile", []byte(doc)); err != nil {
		return nil, &ValidationError{Stage: "cv", Message: "schema mismatch", Cause: err}
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return nil, &ParseError{Stage: "cv", Message: "unmarshal failed", Cause: err}
	}

	normalizeProfile(&profile)

	if err := validate.Struct(&profile); err != nil {
		return nil, &ValidationError{Stage: "cv", Message: "struct validation failed", Cause: err}
	}

	return &profile, nil
}

func normalizeProfile(profile *types.CandidateProfile) {
	ids := make(map[string]bool, len(profile.Experience))
	for i := range profile.Experience {
		exp := &profile.Experience[i]
		if exp.ID == "" {
			exp.ID = "exp_" + uuid.NewString()
		}
		ids[exp.ID] = true

		if exp.DurationMonths == 0 {
			exp.DurationMonths = monthsBetween(exp.StartDate, exp.EndDate)
		}

		for j := range exp.Achievements {
			ach := &exp.Achievements[j]
			if ach.Metrics != nil && ach.Metrics.Value != "" {
				ach.Quantified = true
			}
		}
	}

	kept := profile.Skills.InferredFromExperience[:0]
	for _, inf := range profile.Skills.InferredFromExperience {
		if inf.EvidenceSource == "" || ids[inf.EvidenceSource] {
			kept = append(kept, inf)
		}
	}
	profile.Skills.InferredFromExperience = kept
}

// monthsBetween computes whole months between two YYYY-MM dates. An end date
// of "present" (or empty) means now. Unparsable dates yield zero.
func monthsBetween(start, end string) int {
	startTime, err := time.Parse("2006-01", start)
	if err != nil {
		return 0
	}

	var endTime time.Time
	if end == "" || strings.EqualFold(end, "present") {
		endTime = time.Now()
	} else {
		endTime, err = time.Parse("2006-01", end)
		if err != nil {
			return 0
		}
	}

	months := (endTime.Year()-startTime.Year())*12 + int(endTime.Month()) - int(startTime.Month())
	if months < 0 {
		return 0
	}
	return months
}
