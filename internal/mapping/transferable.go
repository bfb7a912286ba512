package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// TransferableSkill is one related skill identified by the discovery collaborator
type TransferableSkill struct {
	CandidateSkill       string `json:"candidate_skill"`
	RelevanceExplanation string `json:"relevance_explanation"`
}

// TransferableFinder discovers candidate skills transferable to a requirement.
// Implementations may be remote collaborators; callers treat any failure as
// "no transferable evidence" rather than an error.
type TransferableFinder interface {
	FindTransferable(ctx context.Context, req types.Requirement, candidateSkills []string) ([]TransferableSkill, error)
}

// LLMFinder implements TransferableFinder on top of an LLM client
type LLMFinder struct {
	Client llm.Client
}

// FindTransferable asks the model which of the candidate's skills transfer to
// the requirement and parses the JSON reply.
func (f *LLMFinder) FindTransferable(ctx context.Context, req types.Requirement, candidateSkills []string) ([]TransferableSkill, error) {
	template := prompts.MustGet("mapping.json", "transferable-skills")
	prompt := prompts.Format(template, map[string]string{
		"Description":     req.Description,
		"Keywords":        strings.Join(req.Keywords, ", "),
		"CandidateSkills": strings.Join(candidateSkills, ", "),
	})

	response, err := f.Client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("transferable skill discovery failed: %w", err)
	}

	return parseTransferableResponse(response)
}

// parseTransferableResponse parses the discovery reply, tolerating prose
// around the JSON object.
func parseTransferableResponse(response string) ([]TransferableSkill, error) {
	jsonText := llm.ExtractJSONObject(response)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object in discovery response")
	}

	var parsed struct {
		TransferableSkills []TransferableSkill `json:"transferable_skills"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response: %w", err)
	}

	return parsed.TransferableSkills, nil
}
