// Package generation produces the tailored CV and cover letter from the
// mapping result. Section builders are deterministic; only the summary,
// bullet rewrites, and the cover letter call the LLM, and each of those
// degrades to the original text when the call fails.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/mapping"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Bullet relevance scoring. Bullets at or above rewriteThreshold are kept
// verbatim; weaker ones are candidates for an LLM rewrite.
const (
	bulletBaseScore     = 50
	bulletKeywordBonus  = 10
	bulletDigitBonus    = 5
	bulletMetricBonus   = 5
	bulletMaxScore      = 100
	rewriteThreshold    = 80
	bulletsPerRole      = 6
	rewriteKeywordLimit = 15
)

// Section list limits
const (
	primarySkillsLimit   = 10
	secondarySkillsLimit = 10
	toolSkillsLimit      = 15
	projectLimit         = 5
	highlightLimit       = 3
)

// Generator builds a tailored CV from the extraction and mapping outputs
type Generator struct {
	Client llm.Client

	requirements *types.JobRequirements
	profile      *types.CandidateProfile
	mapping      *types.MappingResult
	config       strictness.Config

	changes    []types.ChangeLogEntry
	borderline []types.BorderlineItem
}

// NewGenerator creates a generator for one tailoring run
func NewGenerator(client llm.Client, reqs *types.JobRequirements, profile *types.CandidateProfile, result *types.MappingResult, level strictness.Level) *Generator {
	return &Generator{
		Client:       client,
		requirements: reqs,
		profile:      profile,
		mapping:      result,
		config:       strictness.ConfigFor(level),
	}
}

// Generate produces the tailored CV together with the change log and the
// borderline items accumulated while generating.
func (g *Generator) Generate(ctx context.Context) (*types.TailoredCV, []types.ChangeLogEntry, []types.BorderlineItem, error) {
	if g.requirements == nil || g.profile == nil || g.mapping == nil {
		return nil, nil, nil, &GenerationError{Section: "cv", Message: "requirements, profile, and mapping are all required"}
	}

	header := g.buildHeader()

	summary, err := g.generateSummary(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	experience, err := g.buildExperience(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	cv := &types.TailoredCV{
		Header:         header,
		Summary:        summary,
		Experience:     experience,
		Skills:         g.buildSkills(),
		Education:      g.buildEducation(),
		Certifications: g.buildCertifications(),
		Projects:       g.buildProjects(),
	}

	return cv, g.changes, g.borderline, nil
}

// buildHeader keeps the candidate's original title even when it differs from
// the job title. Title alignment is a fabrication risk, not a tailoring win.
func (g *Generator) buildHeader() types.TailoredHeader {
	var originalTitle string
	if len(g.profile.Experience) > 0 {
		originalTitle = g.profile.Experience[0].Title
	}

	title := originalTitle
	if title == "" {
		title = g.requirements.JobTitle
	}

	if originalTitle != "" && !strings.EqualFold(originalTitle, g.requirements.JobTitle) {
		g.changes = append(g.changes, types.ChangeLogEntry{
			Section:        "header",
			ChangeType:     types.ChangeRewrite,
			Original:       originalTitle,
			New:            title,
			Justification:  "Kept original title to maintain accuracy",
			Confidence:     "high",
			RequiresReview: false,
		})
	}

	contact := map[string]string{}
	info := g.profile.PersonalInfo
	if info.Email != "" {
		contact["email"] = info.Email
	}
	if info.Phone != "" {
		contact["phone"] = info.Phone
	}
	if info.Location != "" {
		contact["location"] = info.Location
	}
	if info.LinkedIn != "" {
		contact["linkedin"] = info.LinkedIn
	}
	if info.Website != "" {
		contact["website"] = info.Website
	}

	return types.TailoredHeader{Name: info.Name, Title: title, Contact: contact}
}

func (g *Generator) generateSummary(ctx context.Context) (string, error) {
	var currentTitle string
	if len(g.profile.Experience) > 0 {
		currentTitle = g.profile.Experience[0].Title
	}

	topSkills := g.topMatchingSkills(5)
	achievements := g.quantifiedAchievements(2, 3)

	var reqLines []string
	for _, req := range firstN(g.requirements.MustHave, 5) {
		reqLines = append(reqLines, "- "+req.Description)
	}

	template, err := prompts.Get("generation.json", "tailored-summary")
	if err != nil {
		return "", &GenerationError{Section: "summary", Message: "prompt template missing", Cause: err}
	}

	keyAchievements := strings.Join(achievements, "; ")
	if keyAchievements == "" {
		keyAchievements = "Various accomplishments"
	}

	prompt := prompts.Format(template, map[string]string{
		"JobTitle":        g.requirements.JobTitle,
		"Company":         companyOr(g.requirements.Company),
		"Requirements":    strings.Join(reqLines, "\n"),
		"TotalYears":      fmt.Sprintf("%.1f", evidence.TotalExperienceYears(g.profile)),
		"CurrentTitle":    currentTitle,
		"TopSkills":       strings.Join(topSkills, ", "),
		"KeyAchievements": keyAchievements,
		"Keywords":        strings.Join(firstNStrings(g.requirements.ATSKeywords.HighPriority, 5), ", "),
	})

	summary, err := g.Client.GenerateText(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &GenerationError{Section: "summary", Message: "LLM request failed", Cause: err}
	}
	summary = strings.Trim(strings.TrimSpace(summary), `"`)

	var originalSummary string
	if g.profile.ProfessionalSummary != nil {
		originalSummary = g.profile.ProfessionalSummary.OriginalText
	}

	g.changes = append(g.changes, types.ChangeLogEntry{
		Section:        "summary",
		ChangeType:     types.ChangeRewrite,
		Original:       originalSummary,
		New:            summary,
		Justification:  "Generated job-aligned summary using only facts from original CV",
		Confidence:     "high",
		RequiresReview: true,
	})

	return summary, nil
}

func (g *Generator) buildExperience(ctx context.Context) ([]types.TailoredExperience, error) {
	keywords := firstNStrings(
		append(append([]string{}, g.requirements.ATSKeywords.HighPriority...), g.requirements.ATSKeywords.MediumPriority...),
		rewriteKeywordLimit,
	)

	var responsibilities []string
	for _, resp := range firstNResponsibilities(g.requirements.Responsibilities, 5) {
		responsibilities = append(responsibilities, resp.Description)
	}

	var tailored []types.TailoredExperience
	for _, exp := range g.profile.Experience {
		var items []string
		for _, resp := range exp.Responsibilities {
			items = append(items, resp.OriginalText)
		}
		for _, ach := range exp.Achievements {
			items = append(items, ach.OriginalText)
		}

		ranked := rankBullets(items, keywords)

		var bullets []types.TailoredBullet
		for _, item := range firstNRanked(ranked, bulletsPerRole) {
			if g.config.AllowReframing != strictness.ReframeMinimal && item.score < rewriteThreshold {
				bullets = append(bullets, g.rewriteBullet(ctx, item.text, keywords, responsibilities))
			} else {
				bullets = append(bullets, types.TailoredBullet{
					Text:         item.text,
					KeywordsUsed: keywordsInText(item.text, keywords),
				})
			}
		}

		if reordered(items, bullets) {
			g.changes = append(g.changes, types.ChangeLogEntry{
				Section:        "experience",
				ChangeType:     types.ChangeReorder,
				Original:       "Original order for " + exp.Company,
				New:            "Reordered by job relevance",
				Justification:  "Most relevant achievements moved to top",
				Confidence:     "high",
				RequiresReview: false,
			})
		}

		tailored = append(tailored, types.TailoredExperience{
			Company:  exp.Company,
			Title:    exp.Title,
			Dates:    exp.StartDate + " - " + exp.EndDate,
			Location: exp.Location,
			Bullets:  bullets,
		})
	}

	return tailored, nil
}

type rankedBullet struct {
	score int
	text  string
}

// rankBullets orders bullets by job relevance, most relevant first.
// The sort is stable so ties keep original CV order.
func rankBullets(items []string, keywords []string) []rankedBullet {
	ranked := make([]rankedBullet, len(items))
	for i, item := range items {
		ranked[i] = rankedBullet{score: scoreBullet(item, keywords), text: item}
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

func scoreBullet(text string, keywords []string) int {
	score := bulletBaseScore
	lower := strings.ToLower(text)

	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			score += bulletKeywordBonus
		}
	}

	if strings.ContainsAny(text, "0123456789") {
		score += bulletDigitBonus
	}
	if strings.ContainsAny(text, "%$") {
		score += bulletMetricBonus
	}

	if score > bulletMaxScore {
		return bulletMaxScore
	}
	return score
}

type bulletRewriteResponse struct {
	Rewritten    string   `json:"rewritten"`
	KeywordsUsed []string `json:"keywords_used"`
	ChangeType   string   `json:"change_type"`
	Explanation  string   `json:"explanation"`
}

// rewriteBullet asks the LLM to reframe one bullet. Any failure returns the
// original text unchanged; a rewrite never blocks the run.
func (g *Generator) rewriteBullet(ctx context.Context, original string, keywords, responsibilities []string) types.TailoredBullet {
	fallback := types.TailoredBullet{
		Text:         original,
		KeywordsUsed: keywordsInText(original, keywords),
	}

	template, err := prompts.Get("generation.json", "bullet-rewrite")
	if err != nil {
		return fallback
	}

	var respLines []string
	for _, resp := range firstNStrings(responsibilities, 3) {
		respLines = append(respLines, "- "+resp)
	}

	prompt := prompts.Format(template, map[string]string{
		"Original":         original,
		"Keywords":         strings.Join(firstNStrings(keywords, 10), ", "),
		"Responsibilities": strings.Join(respLines, "\n"),
	})

	response, err := g.Client.GenerateText(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return fallback
	}

	doc := llm.ExtractJSONObject(response)
	if doc == "" {
		return fallback
	}

	var parsed bulletRewriteResponse
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil || parsed.Rewritten == "" {
		return fallback
	}

	if parsed.ChangeType != "none" {
		confidence := "high"
		requiresReview := false
		if parsed.ChangeType == "rewrite" {
			confidence = "medium"
			requiresReview = true
		}
		g.changes = append(g.changes, types.ChangeLogEntry{
			Section:        "experience",
			ChangeType:     types.ChangeRewrite,
			Original:       original,
			New:            parsed.Rewritten,
			Justification:  parsed.Explanation,
			Confidence:     confidence,
			RequiresReview: requiresReview,
		})

		if parsed.ChangeType == "rewrite" {
			g.borderline = append(g.borderline, types.BorderlineItem{
				Content:          parsed.Rewritten,
				Category:         "reframed_significantly",
				OriginalEvidence: original,
				RiskLevel:        "low",
				UserPrompt:       fmt.Sprintf("Original: '%s'\nRewritten: '%s'\nIs this an accurate reframing?", original, parsed.Rewritten),
			})
		}
	}

	return types.TailoredBullet{Text: parsed.Rewritten, KeywordsUsed: parsed.KeywordsUsed}
}

// buildSkills tiers the candidate's skills by the job's keyword priority.
// Inferred skills join the pool only when strictness allows them.
func (g *Generator) buildSkills() types.TailoredSkills {
	allSkills := append([]string{}, g.profile.Skills.ExplicitlyListed...)
	if g.config.AllowInferredSkills {
		for _, inferred := range g.profile.Skills.InferredFromExperience {
			if !containsFold(allSkills, inferred.Skill) {
				allSkills = append(allSkills, inferred.Skill)
			}
		}
	}

	var primary, secondary, tools []string
	for _, skill := range allSkills {
		switch mapping.PriorityOf(g.requirements, skill) {
		case mapping.KeywordHigh:
			primary = append(primary, skill)
		case mapping.KeywordMedium, mapping.KeywordContextual:
			secondary = append(secondary, skill)
		default:
			tools = append(tools, skill)
		}
	}

	if len(primary) == 0 && len(secondary) > 0 {
		cut := len(secondary)
		if cut > 5 {
			cut = 5
		}
		primary = secondary[:cut]
		secondary = secondary[cut:]
	}

	return types.TailoredSkills{
		Primary:   firstNStrings(primary, primarySkillsLimit),
		Secondary: firstNStrings(secondary, secondarySkillsLimit),
		Tools:     firstNStrings(tools, toolSkillsLimit),
	}
}

func (g *Generator) buildEducation() []types.TailoredEducation {
	var out []types.TailoredEducation
	for _, edu := range g.profile.Education {
		var year string
		if edu.GraduationYear != nil {
			year = fmt.Sprintf("%d", *edu.GraduationYear)
		}
		out = append(out, types.TailoredEducation{
			Institution: edu.Institution,
			Degree:      edu.Degree,
			Field:       edu.Field,
			Year:        year,
			Highlights:  firstNStrings(edu.Achievements, highlightLimit),
		})
	}
	return out
}

// buildCertifications orders job-relevant certifications first and drops
// expired ones.
func (g *Generator) buildCertifications() []types.TailoredCertification {
	relevant := keywordSet(g.requirements)

	isRelevant := func(cert types.Certification) bool {
		name := strings.ToLower(cert.Name)
		for kw := range relevant {
			if strings.Contains(name, kw) {
				return true
			}
		}
		return false
	}

	var out []types.TailoredCertification
	for _, cert := range g.profile.Certifications {
		if cert.Status != "completed" && cert.Status != "in_progress" {
			continue
		}
		if isRelevant(cert) {
			out = append(out, tailoredCert(cert))
		}
	}
	for _, cert := range g.profile.Certifications {
		if cert.Status != "completed" && cert.Status != "in_progress" {
			continue
		}
		if !isRelevant(cert) {
			out = append(out, tailoredCert(cert))
		}
	}
	return out
}

func tailoredCert(cert types.Certification) types.TailoredCertification {
	return types.TailoredCertification{Name: cert.Name, Issuer: cert.Issuer, Date: cert.Date}
}

// buildProjects keeps only projects whose technologies or description
// overlap the job's keywords.
func (g *Generator) buildProjects() []types.TailoredProject {
	relevant := keywordSet(g.requirements)

	var out []types.TailoredProject
	for _, proj := range g.profile.Projects {
		if len(out) == projectLimit {
			break
		}
		if projectMatches(proj, relevant) {
			out = append(out, types.TailoredProject{
				Name:         proj.Name,
				Description:  proj.Description,
				Technologies: proj.Technologies,
			})
		}
	}
	return out
}

func projectMatches(proj types.Project, relevant map[string]bool) bool {
	for _, tech := range proj.Technologies {
		if relevant[strings.ToLower(tech)] {
			return true
		}
	}
	desc := strings.ToLower(proj.Description)
	for kw := range relevant {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func keywordSet(reqs *types.JobRequirements) map[string]bool {
	set := make(map[string]bool)
	for _, kw := range reqs.ATSKeywords.HighPriority {
		set[strings.ToLower(kw)] = true
	}
	for _, kw := range reqs.ATSKeywords.MediumPriority {
		set[strings.ToLower(kw)] = true
	}
	return set
}

// topMatchingSkills returns up to n listed skills that the job tracks as
// keywords, padded with leading listed skills when fewer than three match.
func (g *Generator) topMatchingSkills(n int) []string {
	listed := g.profile.Skills.ExplicitlyListed

	var top []string
	for _, skill := range listed {
		if len(top) == n {
			break
		}
		if mapping.PriorityOf(g.requirements, skill) != mapping.KeywordNone {
			top = append(top, skill)
		}
	}
	if len(top) < 3 {
		for _, skill := range listed {
			if len(top) == n {
				break
			}
			if !containsFold(top, skill) {
				top = append(top, skill)
			}
		}
	}
	return top
}

// quantifiedAchievements collects quantified achievement texts from the most
// recent roles.
func (g *Generator) quantifiedAchievements(roles, limit int) []string {
	var out []string
	for _, exp := range firstNExperience(g.profile.Experience, roles) {
		for _, ach := range exp.Achievements {
			if ach.Quantified && len(out) < limit {
				out = append(out, ach.OriginalText)
			}
		}
	}
	return out
}

func keywordsInText(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var used []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			used = append(used, kw)
		}
	}
	return used
}

func reordered(original []string, bullets []types.TailoredBullet) bool {
	for i, bullet := range bullets {
		if i >= len(original) || original[i] != bullet.Text {
			return true
		}
	}
	return false
}

func companyOr(company string) string {
	if company == "" {
		return "the company"
	}
	return company
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func firstN(reqs []types.Requirement, n int) []types.Requirement {
	if len(reqs) > n {
		return reqs[:n]
	}
	return reqs
}

func firstNStrings(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func firstNResponsibilities(list []types.Responsibility, n int) []types.Responsibility {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func firstNExperience(list []types.Experience, n int) []types.Experience {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func firstNRanked(list []rankedBullet, n int) []rankedBullet {
	if len(list) > n {
		return list[:n]
	}
	return list
}
