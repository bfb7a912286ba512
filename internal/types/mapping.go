package types

// SourceType identifies which profile section an evidence span came from
type SourceType string

// Evidence source types, in locator scan order
const (
	SourceSkill         SourceType = "skill"
	SourceExperience    SourceType = "experience"
	SourceProject       SourceType = "project"
	SourceCertification SourceType = "certification"
)

// MatchType classifies how an evidence item satisfies a requirement
type MatchType string

// Match types
const (
	MatchDirect       MatchType = "direct"
	MatchTransferable MatchType = "transferable"
	MatchPartial      MatchType = "partial"
	MatchLearning     MatchType = "learning"
)

// EvidenceItem is a verbatim span from the candidate profile that supports a requirement
type EvidenceItem struct {
	SourceType     SourceType `json:"source_type"`
	SourceID       string     `json:"source_id"`
	OriginalText   string     `json:"original_text"`
	RelevanceScore int        `json:"relevance_score" validate:"gte=0,lte=100"`
	MatchType      MatchType  `json:"match_type"`
}

// MitigationStrategy names a way of addressing an unmet requirement
type MitigationStrategy string

// Mitigation strategies
const (
	MitigationReframeExisting   MitigationStrategy = "reframe_existing"
	MitigationHighlightLearning MitigationStrategy = "highlight_learning"
	MitigationShowAdjacent      MitigationStrategy = "show_adjacent"
	MitigationAcknowledgeGap    MitigationStrategy = "acknowledge_gap"
)

// MitigationOption is a proposed strategy for addressing a gap
type MitigationOption struct {
	Strategy             MitigationStrategy `json:"strategy"`
	Suggestion           string             `json:"suggestion"`
	RequiresConfirmation bool               `json:"requires_user_confirmation"`
}

// GapSeverity grades how badly a requirement is unmet
type GapSeverity string

// Gap severities
const (
	SeverityCritical GapSeverity = "critical"
	SeverityModerate GapSeverity = "moderate"
	SeverityMinor    GapSeverity = "minor"
	SeverityNone     GapSeverity = "none"
)

// GapAnalysis classifies the gap between a requirement and the evidence found for it
type GapAnalysis struct {
	HasGap            bool               `json:"has_gap"`
	Severity          GapSeverity        `json:"gap_severity"`
	MitigationOptions []MitigationOption `json:"mitigation_options"`
}

// RequirementPriority is the priority tier a requirement was extracted under
type RequirementPriority string

// Requirement priority tiers
const (
	PriorityMustHave   RequirementPriority = "must_have"
	PriorityNiceToHave RequirementPriority = "nice_to_have"
	PriorityInferred   RequirementPriority = "inferred"
)

// RequirementRef references a requirement inside a mapping entry
type RequirementRef struct {
	Text     string              `json:"text"`
	Priority RequirementPriority `json:"priority"`
	Category RequirementCategory `json:"category"`
}

// MappingEntry maps one requirement to its evidence and gap analysis.
// There is exactly one entry per input requirement.
type MappingEntry struct {
	Requirement RequirementRef `json:"requirement"`
	Evidence    []EvidenceItem `json:"evidence"`
	GapAnalysis GapAnalysis    `json:"gap_analysis"`
}

// OverallMatch aggregates per-requirement results into headline statistics
type OverallMatch struct {
	Score              int      `json:"score" validate:"gte=0,lte=100"`
	MustHaveCoverage   string   `json:"must_have_coverage"`
	NiceToHaveCoverage string   `json:"nice_to_have_coverage"`
	StrongestMatches   []string `json:"strongest_matches"`
	CriticalGaps       []string `json:"critical_gaps"`
}

// KeywordCoverage classifies ATS keywords against the candidate profile.
// MissingButAddressable is reserved in the model but never populated by
// current logic; everything not present is genuinely missing.
type KeywordCoverage struct {
	PresentInCV           []string `json:"present_in_cv"`
	MissingButAddressable []string `json:"missing_but_addressable"`
	GenuinelyMissing      []string `json:"genuinely_missing"`
}

// MappingResult is the complete output of requirement-to-evidence mapping
type MappingResult struct {
	MappingTable    []MappingEntry  `json:"mapping_table"`
	OverallMatch    OverallMatch    `json:"overall_match"`
	KeywordCoverage KeywordCoverage `json:"keyword_coverage"`
}
