package qa

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// seniorityMarkers are title words whose addition counts as title inflation
var seniorityMarkers = []string{"senior", "lead", "principal", "director", "head", "chief", "vp"}

// Validator checks a tailored CV against the original profile. Company and
// skill provenance are hard checks; metrics and titles only warn.
type Validator struct {
	original *types.CandidateProfile
	tailored *types.TailoredCV

	errors   []string
	warnings []string
}

// NewValidator creates a validator for one original/tailored pair
func NewValidator(original *types.CandidateProfile, tailored *types.TailoredCV) *Validator {
	return &Validator{original: original, tailored: tailored}
}

// ValidateAll runs every check and reports validity. Validity is determined
// solely by the hard checks; warnings never block.
func (v *Validator) ValidateAll() (bool, []string, []string) {
	v.checkFabricatedCompanies()
	v.checkFabricatedSkills()
	v.checkExaggeratedMetrics()
	v.checkTitleInflation()

	return len(v.errors) == 0, v.errors, v.warnings
}

// Err returns a FabricationError when hard checks failed, nil otherwise.
// ValidateAll must have run first.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &FabricationError{Violations: v.errors}
}

// checkFabricatedCompanies requires every tailored company to exist in the original
func (v *Validator) checkFabricatedCompanies() {
	originals := make(map[string]bool, len(v.original.Experience))
	for _, exp := range v.original.Experience {
		originals[strings.ToLower(exp.Company)] = true
	}

	for _, exp := range v.tailored.Experience {
		if !originals[strings.ToLower(exp.Company)] {
			v.errors = append(v.errors,
				fmt.Sprintf("FABRICATION: Company '%s' not found in original CV", exp.Company))
		}
	}
}

// checkFabricatedSkills requires every tailored skill to be evidenced by the
// original profile's aggregate skill set.
func (v *Validator) checkFabricatedSkills() {
	originals := make(map[string]bool)
	for _, skill := range v.original.Skills.ExplicitlyListed {
		originals[strings.ToLower(skill)] = true
	}
	for _, inferred := range v.original.Skills.InferredFromExperience {
		originals[strings.ToLower(inferred.Skill)] = true
	}
	for _, exp := range v.original.Experience {
		for _, resp := range exp.Responsibilities {
			for _, tech := range resp.ExtractedFacts.Technologies {
				originals[strings.ToLower(tech)] = true
			}
		}
	}
	for _, proj := range v.original.Projects {
		for _, tech := range proj.Technologies {
			originals[strings.ToLower(tech)] = true
		}
	}

	tailored := make([]string, 0,
		len(v.tailored.Skills.Primary)+len(v.tailored.Skills.Secondary)+len(v.tailored.Skills.Tools))
	tailored = append(tailored, v.tailored.Skills.Primary...)
	tailored = append(tailored, v.tailored.Skills.Secondary...)
	tailored = append(tailored, v.tailored.Skills.Tools...)

	flagged := make(map[string]bool)
	for _, skill := range tailored {
		key := strings.ToLower(skill)
		if originals[key] || flagged[key] {
			continue
		}
		flagged[key] = true
		v.errors = append(v.errors,
			fmt.Sprintf("FABRICATION: Skill '%s' not evidenced in original CV", key))
	}
}

// checkExaggeratedMetrics warns about number-like tokens in tailored bullets
// that neither string-match an original token nor fall within tolerance of an
// original value.
func (v *Validator) checkExaggeratedMetrics() {
	originals := originalNumberTokens(v.original)

	for _, exp := range v.tailored.Experience {
		for _, bullet := range exp.Bullets {
			for _, token := range extractNumberTokens(bullet.Text) {
				if !numberIsSupported(token, originals) {
					v.warnings = append(v.warnings,
						fmt.Sprintf("POSSIBLE EXAGGERATION: Number '%s' in bullet may not match original", token))
				}
			}
		}
	}
}

// checkTitleInflation warns for each seniority marker the tailored header
// title adds over the first original experience title.
func (v *Validator) checkTitleInflation() {
	if len(v.original.Experience) == 0 {
		return
	}

	originalTitle := strings.ToLower(v.original.Experience[0].Title)
	tailoredTitle := strings.ToLower(v.tailored.Header.Title)

	for _, marker := range seniorityMarkers {
		if strings.Contains(tailoredTitle, marker) && !strings.Contains(originalTitle, marker) {
			v.warnings = append(v.warnings,
				fmt.Sprintf("TITLE CHANGE: Added '%s' to title - verify this is accurate", marker))
		}
	}
}
