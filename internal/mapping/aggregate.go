package mapping

import (
	"fmt"
	"math"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Overall score weighting and headline list limits
const (
	mustHaveWeight   = 0.7
	niceToHaveWeight = 0.3

	headlineLimit     = 5
	descriptionMaxLen = 50
)

// calculateOverallMatch rolls the mapping table into a single score with
// coverage fractions and headline lists.
func calculateOverallMatch(table []types.MappingEntry) types.OverallMatch {
	mustMatches, mustTotal := countGroup(table, types.PriorityMustHave)
	niceMatches, niceTotal := countGroup(table, types.PriorityNiceToHave)

	score := int(math.Round(groupPct(mustMatches, mustTotal)*mustHaveWeight +
		groupPct(niceMatches, niceTotal)*niceToHaveWeight))

	var strongest, criticalGaps []string
	for _, entry := range table {
		if maxRelevance(entry.Evidence) >= strongEvidenceThreshold && len(strongest) < headlineLimit {
			strongest = append(strongest, truncate(entry.Requirement.Text, descriptionMaxLen))
		}
		if entry.GapAnalysis.Severity == types.SeverityCritical && len(criticalGaps) < headlineLimit {
			criticalGaps = append(criticalGaps, truncate(entry.Requirement.Text, descriptionMaxLen))
		}
	}

	return types.OverallMatch{
		Score:              clampScore(score),
		MustHaveCoverage:   fmt.Sprintf("%d/%d", mustMatches, mustTotal),
		NiceToHaveCoverage: fmt.Sprintf("%d/%d", niceMatches, niceTotal),
		StrongestMatches:   strongest,
		CriticalGaps:       criticalGaps,
	}
}

// countGroup counts matches and total entries for a priority tier.
// An entry matches when it has no gap or only a minor one.
func countGroup(table []types.MappingEntry, priority types.RequirementPriority) (matches, total int) {
	for _, entry := range table {
		if entry.Requirement.Priority != priority {
			continue
		}
		total++
		if !entry.GapAnalysis.HasGap || entry.GapAnalysis.Severity == types.SeverityMinor {
			matches++
		}
	}
	return matches, total
}

// groupPct is the match percentage for a group; empty groups count as fully covered
func groupPct(matches, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(matches) / float64(total) * 100
}

// maxRelevance returns the highest relevance score among evidence items
func maxRelevance(items []types.EvidenceItem) int {
	best := 0
	for _, item := range items {
		if item.RelevanceScore > best {
			best = item.RelevanceScore
		}
	}
	return best
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
