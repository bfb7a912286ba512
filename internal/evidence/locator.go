// Package evidence provides pure lookup of keyword evidence in a candidate profile.
// It does not score or rank; callers attach relevance separately.
package evidence

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Candidate is an untyped evidence candidate returned by the locator
type Candidate struct {
	SourceType types.SourceType
	SourceID   string
	Text       string
}

// Find returns every span in the profile that references the keyword,
// case-insensitively, in fixed scan order: skills, experience, projects,
// certifications. Returns nil when nothing matches.
func Find(profile *types.CandidateProfile, keyword string) []Candidate {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}

	var found []Candidate

	// Explicit skills: exact name match only
	for _, skill := range profile.Skills.ExplicitlyListed {
		if strings.ToLower(skill) == kw {
			found = append(found, Candidate{
				SourceType: types.SourceSkill,
				Text:       fmt.Sprintf("Listed in skills section: %s", skill),
			})
			break
		}
	}

	// Experience: responsibility text, technology tags, achievement text
	for _, exp := range profile.Experience {
		for _, resp := range exp.Responsibilities {
			if strings.Contains(strings.ToLower(resp.OriginalText), kw) {
				found = append(found, Candidate{
					SourceType: types.SourceExperience,
					SourceID:   exp.ID,
					Text:       resp.OriginalText,
				})
			} else if containsFold(resp.ExtractedFacts.Technologies, kw) {
				found = append(found, Candidate{
					SourceType: types.SourceExperience,
					SourceID:   exp.ID,
					Text:       resp.OriginalText,
				})
			}
		}
		for _, ach := range exp.Achievements {
			if strings.Contains(strings.ToLower(ach.OriginalText), kw) {
				found = append(found, Candidate{
					SourceType: types.SourceExperience,
					SourceID:   exp.ID,
					Text:       ach.OriginalText,
				})
			}
		}
	}

	// Projects: description, then technology tags
	for _, proj := range profile.Projects {
		if strings.Contains(strings.ToLower(proj.Description), kw) {
			found = append(found, Candidate{
				SourceType: types.SourceProject,
				Text:       fmt.Sprintf("%s: %s", proj.Name, proj.Description),
			})
		} else if containsFold(proj.Technologies, kw) {
			found = append(found, Candidate{
				SourceType: types.SourceProject,
				Text:       fmt.Sprintf("%s - uses %s", proj.Name, keyword),
			})
		}
	}

	// Certifications: name
	for _, cert := range profile.Certifications {
		if strings.Contains(strings.ToLower(cert.Name), kw) {
			found = append(found, Candidate{
				SourceType: types.SourceCertification,
				Text:       fmt.Sprintf("%s from %s", cert.Name, cert.Issuer),
			})
		}
	}

	return found
}

// AllSkills returns the candidate's aggregate skill set: explicitly listed,
// inferred, experience technologies, and project technologies. The result is
// deduplicated case-insensitively and sorted for deterministic output.
func AllSkills(profile *types.CandidateProfile) []string {
	seen := make(map[string]bool)
	var skills []string

	add := func(s string) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, s)
	}

	for _, s := range profile.Skills.ExplicitlyListed {
		add(s)
	}
	for _, inf := range profile.Skills.InferredFromExperience {
		add(inf.Skill)
	}
	for _, exp := range profile.Experience {
		for _, resp := range exp.Responsibilities {
			for _, tech := range resp.ExtractedFacts.Technologies {
				add(tech)
			}
		}
	}
	for _, proj := range profile.Projects {
		for _, tech := range proj.Technologies {
			add(tech)
		}
	}

	sort.Strings(skills)
	return skills
}

// TotalExperienceYears sums experience durations, in years rounded to one decimal
func TotalExperienceYears(profile *types.CandidateProfile) float64 {
	totalMonths := 0
	for _, exp := range profile.Experience {
		totalMonths += exp.DurationMonths
	}
	return math.Round(float64(totalMonths)/12.0*10) / 10
}

// containsFold reports whether any element of list equals kw case-insensitively.
// kw must already be lowercased.
func containsFold(list []string, kw string) bool {
	for _, item := range list {
		if strings.ToLower(item) == kw {
			return true
		}
	}
	return false
}
