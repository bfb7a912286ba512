package types

// PersonalInfo holds contact information from the original CV
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExtractedFacts holds the structured facts parsed from a responsibility
type ExtractedFacts struct {
	Action       string   `json:"action"`
	Context      string   `json:"context,omitempty"`
	Result       string   `json:"result,omitempty"`
	Technologies []string `json:"technologies"`
	Scope        string   `json:"scope,omitempty"`
}

// ResponsibilityFact pairs a verbatim responsibility with its extracted facts
type ResponsibilityFact struct {
	OriginalText   string         `json:"original_text" validate:"required"`
	ExtractedFacts ExtractedFacts `json:"extracted_facts"`
}

// AchievementMetrics holds a quantified metric attached to an achievement
type AchievementMetrics struct {
	Type    string `json:"type" validate:"oneof=percentage number currency time other"`
	Value   string `json:"value"`
	Context string `json:"context"`
}

// Achievement is an achievement claim with optional quantification
type Achievement struct {
	OriginalText string              `json:"original_text" validate:"required"`
	Quantified   bool                `json:"quantified"`
	Metrics      *AchievementMetrics `json:"metrics,omitempty"`
}

// Experience is a single work experience entry. The ID is the only
// cross-reference key in the profile; it is minted once at extraction time.
type Experience struct {
	ID             string `json:"id"`
	Company        string `json:"company" validate:"required"`
	Title          string `json:"title" validate:"required"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths int    `json:"duration_months"`
	Location       string `json:"location,omitempty"`

	Responsibilities []ResponsibilityFact `json:"responsibilities"`
	Achievements     []Achievement        `json:"achievements"`
}

// InferredSkill is a skill demonstrated by an experience entry rather than
// explicitly listed; EvidenceSource references the experience ID.
type InferredSkill struct {
	Skill          string `json:"skill"`
	EvidenceSource string `json:"evidence_source"`
}

// Skills is the skills section of the profile
type Skills struct {
	ExplicitlyListed       []string        `json:"explicitly_listed"`
	InferredFromExperience []InferredSkill `json:"inferred_from_experience"`
}

// Education is a single education entry
type Education struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	Field          string   `json:"field"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	Achievements   []string `json:"achievements"`
}

// Certification is a single certification entry
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
	Status string `json:"status" validate:"oneof=completed in_progress expired"`
}

// Project is a single project entry
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Role         string   `json:"role,omitempty"`
	Outcomes     []string `json:"outcomes"`
}

// Language is a language proficiency entry
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ProfessionalSummary holds the CV summary and its factual claims
type ProfessionalSummary struct {
	OriginalText    string   `json:"original_text,omitempty"`
	ExtractedClaims []string `json:"extracted_claims"`
}

// CandidateProfile is the complete structured extraction of the original CV.
// Only verifiable facts; nothing is embellished at extraction time.
type CandidateProfile struct {
	PersonalInfo        PersonalInfo         `json:"personal_info" validate:"required"`
	ProfessionalSummary *ProfessionalSummary `json:"professional_summary,omitempty"`
	Experience          []Experience         `json:"experience" validate:"dive"`
	Skills              Skills               `json:"skills"`
	Education           []Education          `json:"education"`
	Certifications      []Certification      `json:"certifications" validate:"dive"`
	Projects            []Project            `json:"projects"`
	Languages           []Language           `json:"languages"`
}
