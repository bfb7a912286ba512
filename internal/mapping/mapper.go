package mapping

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/cv-tailor/internal/evidence"
	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

// defaultDiscoveryConcurrency bounds in-flight transferable discovery calls
const defaultDiscoveryConcurrency = 4

// Mapper maps job requirements to candidate evidence. The zero value maps
// without transferable discovery; set Discovery to enable it.
type Mapper struct {
	// Discovery finds transferable skills for requirements that have no
	// direct evidence. Nil disables discovery regardless of strictness.
	Discovery TransferableFinder
	// Concurrency bounds concurrent discovery calls; 0 uses the default
	Concurrency int
	// Limiter gates discovery calls to the collaborator's rate limit; optional
	Limiter *rate.Limiter
}

// Map produces exactly one MappingEntry per input requirement, must-have
// before nice-to-have, preserving input order. It is total over valid inputs:
// missing evidence is represented in the result, never returned as an error.
func (m *Mapper) Map(ctx context.Context, reqs *types.JobRequirements, profile *types.CandidateProfile, level strictness.Level) (*types.MappingResult, error) {
	if reqs == nil {
		return nil, &InputError{Message: "job requirements are nil"}
	}
	if profile == nil {
		return nil, &InputError{Message: "candidate profile is nil"}
	}

	cfg := strictness.ConfigFor(level)

	type pending struct {
		req      types.Requirement
		priority types.RequirementPriority
		direct   []types.EvidenceItem
	}

	var work []pending
	for _, req := range reqs.MustHave {
		work = append(work, pending{req: req, priority: types.PriorityMustHave})
	}
	for _, req := range reqs.NiceToHave {
		work = append(work, pending{req: req, priority: types.PriorityNiceToHave})
	}

	// Direct evidence first: keyword hits, then the experience-years check
	for i := range work {
		work[i].direct = m.directEvidence(work[i].req, profile)
	}

	// Transferable discovery for requirements still lacking evidence. Calls
	// are independent and bounded; a failed or cancelled call degrades to
	// zero transferable evidence for that requirement only.
	transferable := make([][]types.EvidenceItem, len(work))
	if cfg.AllowInferredSkills && m.Discovery != nil {
		allSkills := evidence.AllSkills(profile)

		g, gctx := errgroup.WithContext(ctx)
		concurrency := m.Concurrency
		if concurrency <= 0 {
			concurrency = defaultDiscoveryConcurrency
		}
		g.SetLimit(concurrency)

		for i := range work {
			if len(work[i].direct) > 0 {
				continue
			}
			i := i
			g.Go(func() error {
				if m.Limiter != nil {
					if err := m.Limiter.Wait(gctx); err != nil {
						return nil
					}
				}
				found, err := m.Discovery.FindTransferable(gctx, work[i].req, allSkills)
				if err != nil {
					return nil
				}
				transferable[i] = transferableEvidence(found, profile)
				return nil
			})
		}
		// Goroutines swallow their own failures, so Wait cannot error
		_ = g.Wait()
	}

	// Finalize entries in input order
	table := make([]types.MappingEntry, 0, len(work))
	for i := range work {
		items := dedupeByText(append(work[i].direct, transferable[i]...))
		table = append(table, types.MappingEntry{
			Requirement: types.RequirementRef{
				Text:     work[i].req.Description,
				Priority: work[i].priority,
				Category: work[i].req.Category,
			},
			Evidence:    items,
			GapAnalysis: analyzeGap(work[i].req, items, cfg),
		})
	}

	return &types.MappingResult{
		MappingTable:    table,
		OverallMatch:    calculateOverallMatch(table),
		KeywordCoverage: analyzeKeywordCoverage(reqs, profile),
	}, nil
}

// directEvidence gathers keyword hits and, for experience requirements with a
// years threshold, the total-experience check.
func (m *Mapper) directEvidence(req types.Requirement, profile *types.CandidateProfile) []types.EvidenceItem {
	var items []types.EvidenceItem

	for _, keyword := range req.Keywords {
		for _, cand := range evidence.Find(profile, keyword) {
			items = append(items, types.EvidenceItem{
				SourceType:     cand.SourceType,
				SourceID:       cand.SourceID,
				OriginalText:   cand.Text,
				RelevanceScore: relevanceScore(keyword, cand),
				MatchType:      types.MatchDirect,
			})
		}
	}

	if req.Category == types.CategoryExperience && req.YearsRequired != nil {
		if item := experienceEvidence(*req.YearsRequired, profile); item != nil {
			items = append(items, *item)
		}
	}

	return items
}

// experienceEvidence checks the total-years requirement. Meeting it fully is
// a direct match at full relevance; reaching 70% of it is a partial match.
func experienceEvidence(yearsRequired int, profile *types.CandidateProfile) *types.EvidenceItem {
	totalYears := evidence.TotalExperienceYears(profile)
	required := float64(yearsRequired)

	switch {
	case totalYears >= required:
		return &types.EvidenceItem{
			SourceType:     types.SourceExperience,
			SourceID:       "total",
			OriginalText:   fmt.Sprintf("Total experience: %.1f years", totalYears),
			RelevanceScore: fullExperienceRelevance,
			MatchType:      types.MatchDirect,
		}
	case totalYears >= required*partialExperienceRatio:
		return &types.EvidenceItem{
			SourceType:     types.SourceExperience,
			SourceID:       "total",
			OriginalText:   fmt.Sprintf("Total experience: %.1f years (requirement: %d)", totalYears, yearsRequired),
			RelevanceScore: partialExperienceRelevance,
			MatchType:      types.MatchPartial,
		}
	default:
		return nil
	}
}

// transferableEvidence converts discovered skills into evidence items,
// attaching at most the first locator hit for each skill.
func transferableEvidence(found []TransferableSkill, profile *types.CandidateProfile) []types.EvidenceItem {
	var items []types.EvidenceItem
	for _, skill := range found {
		if skill.CandidateSkill == "" {
			continue
		}
		hits := evidence.Find(profile, skill.CandidateSkill)
		if len(hits) == 0 {
			continue
		}
		items = append(items, types.EvidenceItem{
			SourceType:     hits[0].SourceType,
			SourceID:       hits[0].SourceID,
			OriginalText:   fmt.Sprintf("%s (Transferable: %s)", hits[0].Text, skill.RelevanceExplanation),
			RelevanceScore: transferableRelevance,
			MatchType:      types.MatchTransferable,
		})
	}
	return items
}

// dedupeByText collapses evidence items with identical original text,
// keeping the first occurrence in scan order.
func dedupeByText(items []types.EvidenceItem) []types.EvidenceItem {
	seen := make(map[string]bool, len(items))
	unique := make([]types.EvidenceItem, 0, len(items))
	for _, item := range items {
		if seen[item.OriginalText] {
			continue
		}
		seen[item.OriginalText] = true
		unique = append(unique, item)
	}
	return unique
}
