package mapping

import (
	"github.com/jonathan/cv-tailor/internal/strictness"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Gap analyzer thresholds over deduplicated evidence relevance
const (
	strongEvidenceThreshold = 80
	viableEvidenceThreshold = 50
)

// analyzeGap classifies how well the deduplicated evidence satisfies a
// requirement. The check order is a contract: strong max relevance without a
// direct match falls through to the minor/moderate branches instead of
// counting as "no gap".
func analyzeGap(req types.Requirement, items []types.EvidenceItem, cfg strictness.Config) types.GapAnalysis {
	if len(items) == 0 {
		return noEvidenceGap(req, cfg)
	}

	maxScore := 0
	hasDirect := false
	for _, item := range items {
		if item.RelevanceScore > maxScore {
			maxScore = item.RelevanceScore
		}
		if item.MatchType == types.MatchDirect {
			hasDirect = true
		}
	}

	switch {
	case maxScore >= strongEvidenceThreshold && hasDirect:
		return types.GapAnalysis{
			HasGap:            false,
			Severity:          types.SeverityNone,
			MitigationOptions: []types.MitigationOption{},
		}
	case maxScore >= viableEvidenceThreshold:
		return types.GapAnalysis{
			HasGap:   true,
			Severity: types.SeverityMinor,
			MitigationOptions: []types.MitigationOption{{
				Strategy:             types.MitigationReframeExisting,
				Suggestion:           "Reframe existing experience to better match requirement language",
				RequiresConfirmation: false,
			}},
		}
	default:
		return types.GapAnalysis{
			HasGap:   true,
			Severity: types.SeverityModerate,
			MitigationOptions: []types.MitigationOption{{
				Strategy:             types.MitigationHighlightLearning,
				Suggestion:           "Emphasize related experience and quick learning capability",
				RequiresConfirmation: true,
			}},
		}
	}
}

// noEvidenceGap handles the zero-evidence branch. Mitigations are proposed
// only when the strictness repertoire permits them.
func noEvidenceGap(req types.Requirement, cfg strictness.Config) types.GapAnalysis {
	severity := types.SeverityModerate
	if req.Specificity == types.SpecificityExact {
		severity = types.SeverityCritical
	}

	options := []types.MitigationOption{}
	if cfg.GapMitigation == strictness.MitigateAllStrategies || cfg.GapMitigation == strictness.MitigateCreativePositioning {
		options = append(options, types.MitigationOption{
			Strategy:             types.MitigationAcknowledgeGap,
			Suggestion:           "Acknowledge this gap and express willingness to learn",
			RequiresConfirmation: true,
		})

		if cfg.GapMitigation == strictness.MitigateCreativePositioning {
			options = append(options, types.MitigationOption{
				Strategy:             types.MitigationShowAdjacent,
				Suggestion:           "Highlight quick learning ability through similar transitions in past",
				RequiresConfirmation: true,
			})
		}
	}

	return types.GapAnalysis{
		HasGap:            true,
		Severity:          severity,
		MitigationOptions: options,
	}
}
