// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RequirementCategory classifies a job requirement
type RequirementCategory string

// Requirement categories produced by job extraction
const (
	CategoryTechnicalSkill RequirementCategory = "technical_skill"
	CategorySoftSkill      RequirementCategory = "soft_skill"
	CategoryExperience     RequirementCategory = "experience"
	CategoryCertification  RequirementCategory = "certification"
	CategoryEducation      RequirementCategory = "education"
)

// Specificity indicates whether a requirement must be met exactly or can be satisfied flexibly
type Specificity string

// Specificity values
const (
	SpecificityExact    Specificity = "exact"
	SpecificityFlexible Specificity = "flexible"
)

// Requirement is a single job requirement. Immutable once extracted.
type Requirement struct {
	Category      RequirementCategory `json:"category" validate:"oneof=technical_skill soft_skill experience certification education"`
	Description   string              `json:"description" validate:"required"`
	Keywords      []string            `json:"keywords"`
	YearsRequired *int                `json:"years_required,omitempty"`
	Specificity   Specificity         `json:"specificity" validate:"oneof=exact flexible"`
}

// Responsibility is a job duty with the skills it implies
type Responsibility struct {
	Description   string   `json:"description"`
	ImpliedSkills []string `json:"implied_skills"`
}

// ATSKeywords holds keywords tracked for applicant-tracking-system optimization,
// tiered by how strongly the posting emphasizes them.
type ATSKeywords struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	Contextual     []string `json:"contextual"`
}

// CultureSignals captures work-environment indicators from the posting
type CultureSignals struct {
	WorkStyle []string `json:"work_style"`
	Values    []string `json:"values"`
}

// JobRequirements is the complete structured extraction of a job description
type JobRequirements struct {
	JobTitle   string `json:"job_title" validate:"required"`
	Company    string `json:"company,omitempty"`
	Department string `json:"department,omitempty"`

	MustHave   []Requirement `json:"must_have" validate:"dive"`
	NiceToHave []Requirement `json:"nice_to_have" validate:"dive"`
	Inferred   []Requirement `json:"inferred" validate:"dive"`

	Responsibilities []Responsibility `json:"responsibilities"`
	ATSKeywords      ATSKeywords      `json:"ats_keywords"`
	CultureSignals   CultureSignals   `json:"culture_signals"`
}
