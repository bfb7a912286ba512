package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

const cultureTextLimit = 100

// GenerateCoverLetter writes a four-paragraph cover letter grounded in the
// mapping result. When the LLM call or its output fails, a template-based
// letter is returned instead so the pipeline still produces something usable.
func GenerateCoverLetter(ctx context.Context, client llm.Client, reqs *types.JobRequirements, profile *types.CandidateProfile, result *types.MappingResult) (*types.CoverLetter, error) {
	if reqs == nil || profile == nil || result == nil {
		return nil, &GenerationError{Section: "cover letter", Message: "requirements, profile, and mapping are all required"}
	}

	var currentTitle string
	var achievements []string
	if len(profile.Experience) > 0 {
		currentTitle = profile.Experience[0].Title
		for _, exp := range firstNExperience(profile.Experience, 2) {
			for _, ach := range exp.Achievements {
				if ach.Quantified {
					achievements = append(achievements, ach.OriginalText)
				}
			}
			if len(achievements) >= 3 {
				break
			}
		}
	}

	var reqParts []string
	for _, req := range firstN(reqs.MustHave, 5) {
		reqParts = append(reqParts, req.Description)
	}

	culture := strings.Join(append(append([]string{}, reqs.CultureSignals.WorkStyle...), reqs.CultureSignals.Values...), ", ")
	if len(culture) > cultureTextLimit {
		culture = culture[:cultureTextLimit]
	}
	if culture == "" {
		culture = "Not specified"
	}

	skills := strings.Join(firstNStrings(result.KeywordCoverage.PresentInCV, 5), ", ")
	if skills == "" {
		skills = "Various relevant skills"
	}

	achievementText := strings.Join(achievements, "; ")
	if achievementText == "" {
		achievementText = "Various accomplishments"
	}

	strongest := strings.Join(firstNStrings(result.OverallMatch.StrongestMatches, 3), ", ")
	if strongest == "" {
		strongest = "Multiple areas"
	}

	gaps := strings.Join(firstNStrings(result.OverallMatch.CriticalGaps, 2), "; ")
	if gaps == "" {
		gaps = "No critical gaps"
	}

	template, err := prompts.Get("generation.json", "cover-letter")
	if err != nil {
		return nil, &GenerationError{Section: "cover letter", Message: "prompt template missing", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"JobTitle":     reqs.JobTitle,
		"Company":      companyOr(reqs.Company),
		"Requirements": strings.Join(reqParts, "; "),
		"Culture":      culture,
		"Name":         profile.PersonalInfo.Name,
		"CurrentTitle": currentTitle,
		"Years":        fmt.Sprintf("%.1f", evidence.TotalExperienceYears(profile)),
		"Skills":       skills,
		"Achievements": achievementText,
		"MatchScore":   fmt.Sprintf("%d", result.OverallMatch.Score),
		"Strongest":    strongest,
		"Gaps":         gaps,
	})

	response, err := client.GenerateText(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return basicCoverLetter(reqs, profile, result), nil
	}

	doc := llm.ExtractJSONObject(response)
	if doc == "" {
		return basicCoverLetter(reqs, profile, result), nil
	}

	var letter types.CoverLetter
	if err := json.Unmarshal([]byte(doc), &letter); err != nil || letter.Hook == "" {
		return basicCoverLetter(reqs, profile, result), nil
	}

	return &letter, nil
}

// basicCoverLetter is the template fallback when LLM generation fails
func basicCoverLetter(reqs *types.JobRequirements, profile *types.CandidateProfile, result *types.MappingResult) *types.CoverLetter {
	jobTitle := reqs.JobTitle
	company := reqs.Company
	if company == "" {
		company = "your organization"
	}
	years := evidence.TotalExperienceYears(profile)

	var currentTitle string
	if len(profile.Experience) > 0 {
		currentTitle = profile.Experience[0].Title
	}

	hook := fmt.Sprintf(
		"I am writing to express my strong interest in the %s position at %s. "+
			"With %.0f years of experience as a %s, I am confident in my ability "+
			"to contribute meaningfully to your team.",
		jobTitle, company, years, currentTitle,
	)

	var achievements []string
	for _, exp := range firstNExperience(profile.Experience, 2) {
		for _, ach := range exp.Achievements {
			if ach.Quantified {
				achievements = append(achievements, ach.OriginalText)
			}
		}
	}

	var valueProposition string
	if len(achievements) > 0 {
		valueProposition = "Throughout my career, I have demonstrated consistent results. " + achievements[0] + " "
		if len(achievements) > 1 {
			valueProposition += "Additionally, " + achievements[1] + " "
		}
		valueProposition += fmt.Sprintf("These experiences have prepared me well for the challenges of the %s role.", jobTitle)
	} else {
		skills := strings.Join(firstNStrings(result.KeywordCoverage.PresentInCV, 3), ", ")
		if skills == "" {
			skills = "relevant areas"
		}
		valueProposition = fmt.Sprintf(
			"My expertise in %s aligns well with the requirements of this position. "+
				"I have a proven track record of delivering results and collaborating "+
				"effectively with cross-functional teams.",
			skills,
		)
	}

	fitNarrative := fmt.Sprintf(
		"I am particularly drawn to %s because of the opportunity to work on "+
			"challenging problems in a dynamic environment. My background in %s "+
			"roles has given me the skills to hit the ground running and make an immediate impact.",
		company, currentTitle,
	)

	closing := "I would welcome the opportunity to discuss how my experience and skills can " +
		"contribute to your team's success. Thank you for considering my application."

	return &types.CoverLetter{
		Hook:             hook,
		ValueProposition: valueProposition,
		FitNarrative:     fitNarrative,
		Closing:          closing,
	}
}
