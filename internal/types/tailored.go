package types

// TailoredHeader is the header section of a tailored CV
type TailoredHeader struct {
	Name    string            `json:"name"`
	Title   string            `json:"title"`
	Contact map[string]string `json:"contact"`
}

// TailoredBullet is a single experience bullet in the tailored document
type TailoredBullet struct {
	Text         string   `json:"text"`
	KeywordsUsed []string `json:"keywords_used"`
}

// TailoredExperience is a tailored experience entry
type TailoredExperience struct {
	Company  string           `json:"company"`
	Title    string           `json:"title"`
	Dates    string           `json:"dates"`
	Location string           `json:"location,omitempty"`
	Bullets  []TailoredBullet `json:"bullets"`
}

// TailoredSkills is the tailored skills section, ordered by job relevance
type TailoredSkills struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Tools     []string `json:"tools"`
}

// TailoredEducation is a tailored education entry
type TailoredEducation struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Year        string   `json:"year,omitempty"`
	Highlights  []string `json:"highlights"`
}

// TailoredCertification is a tailored certification entry
type TailoredCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
}

// TailoredProject is a tailored project entry
type TailoredProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// TailoredCV is the complete tailored document produced by the CV writer
type TailoredCV struct {
	Header         TailoredHeader          `json:"header"`
	Summary        string                  `json:"summary"`
	Experience     []TailoredExperience    `json:"experience"`
	Skills         TailoredSkills          `json:"skills"`
	Education      []TailoredEducation     `json:"education"`
	Certifications []TailoredCertification `json:"certifications"`
	Projects       []TailoredProject       `json:"projects"`
}

// ChangeType classifies a change-log entry
type ChangeType string

// Change types recorded during tailoring
const (
	ChangeReorder    ChangeType = "reorder"
	ChangeRewrite    ChangeType = "rewrite"
	ChangeAddKeyword ChangeType = "add_keyword"
	ChangeQuantify   ChangeType = "quantify"
	ChangeRemove     ChangeType = "remove"
)

// ChangeLogEntry records a single change made while tailoring
type ChangeLogEntry struct {
	Section        string     `json:"section"`
	ChangeType     ChangeType `json:"change_type"`
	Original       string     `json:"original,omitempty"`
	New            string     `json:"new"`
	Justification  string     `json:"justification"`
	Confidence     string     `json:"confidence"`
	RequiresReview bool       `json:"requires_review"`
}

// BorderlineItem is a generated change flagged for human confirmation
type BorderlineItem struct {
	Content          string `json:"content"`
	Category         string `json:"category"`
	OriginalEvidence string `json:"original_evidence"`
	RiskLevel        string `json:"risk_level"`
	UserPrompt       string `json:"user_prompt"`
}

// CoverLetter is the generated four-paragraph cover letter
type CoverLetter struct {
	Hook             string `json:"hook"`
	ValueProposition string `json:"value_proposition"`
	FitNarrative     string `json:"fit_narrative"`
	Closing          string `json:"closing"`
}

// FullText joins the cover letter paragraphs into a single document
func (c *CoverLetter) FullText() string {
	return c.Hook + "\n\n" + c.ValueProposition + "\n\n" + c.FitNarrative + "\n\n" + c.Closing
}

// MatchScoreBreakdown explains how the final match score was computed
type MatchScoreBreakdown struct {
	MustHaveComponent   float64  `json:"must_have_component"`
	NiceToHaveComponent float64  `json:"nice_to_have_component"`
	Bonuses             []string `json:"bonuses"`
	Penalties           []string `json:"penalties"`
}

// MatchScore is the final, displayed match score
type MatchScore struct {
	Score       int                 `json:"score" validate:"gte=0,lte=100"`
	Breakdown   MatchScoreBreakdown `json:"breakdown"`
	Explanation string              `json:"explanation"`
}

// MappingSummary is the condensed mapping view attached to a tailor result
type MappingSummary struct {
	OverallScore       int      `json:"overall_score"`
	MustHaveCoverage   string   `json:"must_have_coverage"`
	NiceToHaveCoverage string   `json:"nice_to_have_coverage"`
	StrongestMatches   []string `json:"strongest_matches"`
	CriticalGaps       []string `json:"critical_gaps"`
	KeywordsPresent    []string `json:"keywords_present"`
	KeywordsMissing    []string `json:"keywords_missing"`
}

// TailorResult is the complete output of a tailoring run
type TailorResult struct {
	TailoredCV      *TailoredCV      `json:"tailored_cv"`
	CoverLetter     *CoverLetter     `json:"cover_letter,omitempty"`
	ChangesLog      []ChangeLogEntry `json:"changes_log"`
	BorderlineItems []BorderlineItem `json:"borderline_items"`
	MatchScore      MatchScore       `json:"match_score"`
	Warnings        []string         `json:"warnings,omitempty"`
	MappingSummary  *MappingSummary  `json:"mapping_summary,omitempty"`
}
