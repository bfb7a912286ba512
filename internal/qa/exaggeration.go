package qa

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// scopeEscalation pairs a weak verb with the strong verb that inflates it
type scopeEscalation struct {
	weak   string
	strong string
}

// scopeEscalations is checked in order; the first matching pair flags the entry
var scopeEscalations = []scopeEscalation{
	{weak: "assisted", strong: "led"},
	{weak: "helped", strong: "managed"},
	{weak: "participated", strong: "drove"},
	{weak: "contributed", strong: "owned"},
	{weak: "supported", strong: "executed"},
}

// DetectExaggeration scans rewrite entries for scope escalation: the original
// uses a weak verb and the rewrite its paired strong verb. No entry yields
// more than one flag.
func DetectExaggeration(changes []types.ChangeLogEntry) []types.BorderlineItem {
	var borderline []types.BorderlineItem

	for _, change := range changes {
		if change.ChangeType != types.ChangeRewrite || change.Original == "" {
			continue
		}

		originalLower := strings.ToLower(change.Original)
		newLower := strings.ToLower(change.New)

		for _, pair := range scopeEscalations {
			if strings.Contains(originalLower, pair.weak) && strings.Contains(newLower, pair.strong) {
				borderline = append(borderline, types.BorderlineItem{
					Content:          change.New,
					Category:         "reframed_significantly",
					OriginalEvidence: change.Original,
					RiskLevel:        "medium",
					UserPrompt:       fmt.Sprintf("Original used '%s', now uses '%s'. Is this accurate?", pair.weak, pair.strong),
				})
				break
			}
		}
	}

	return borderline
}
