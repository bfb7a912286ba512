// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRequirements outputs a human-readable summary of the extracted job requirements.
func (p *Printer) PrintJobRequirements(reqs *types.JobRequirements) {
	if reqs == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", reqs.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", reqs.JobTitle))
	sb.WriteString("\n")

	if len(reqs.MustHave) > 0 {
		sb.WriteString("Must-have:\n")
		count := min(len(reqs.MustHave), maxItemsToShow)
		for i := 0; i < count; i++ {
			req := reqs.MustHave[i]
			sb.WriteString(fmt.Sprintf("  • %s", req.Description))
			if req.Specificity != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", req.Specificity))
			}
			sb.WriteString("\n")
		}
		if len(reqs.MustHave) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reqs.MustHave)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(reqs.NiceToHave) > 0 {
		sb.WriteString("Nice-to-have:\n")
		count := min(len(reqs.NiceToHave), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", reqs.NiceToHave[i].Description))
		}
		if len(reqs.NiceToHave) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reqs.NiceToHave)-3))
		}
	}

	p.printBox("EXTRACTED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOverallMatch outputs the mapping result's overall match summary.
func (p *Printer) PrintOverallMatch(result *types.MappingResult) {
	if result == nil {
		return
	}

	match := result.OverallMatch

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:        %d/100\n", match.Score))
	sb.WriteString(fmt.Sprintf("Must-have:    %s\n", match.MustHaveCoverage))
	sb.WriteString(fmt.Sprintf("Nice-to-have: %s\n", match.NiceToHaveCoverage))

	if len(match.StrongestMatches) > 0 {
		sb.WriteString("\nStrongest matches:\n")
		count := min(len(match.StrongestMatches), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", match.StrongestMatches[i]))
		}
	}

	if len(match.CriticalGaps) > 0 {
		sb.WriteString("\nCritical gaps:\n")
		for _, gap := range match.CriticalGaps {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", gap))
		}
	}

	if len(result.KeywordCoverage.GenuinelyMissing) > 0 {
		missing := strings.Join(result.KeywordCoverage.GenuinelyMissing, ", ")
		if len(missing) > 45 {
			missing = missing[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMissing keywords: %s\n", missing))
	}

	p.printBox("REQUIREMENT MAPPING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchScore outputs the adjusted score with its breakdown.
func (p *Printer) PrintMatchScore(score types.MatchScore) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Final score: %d/100\n", score.Score))
	sb.WriteString(fmt.Sprintf("  must-have:    %.1f\n", score.Breakdown.MustHaveComponent))
	sb.WriteString(fmt.Sprintf("  nice-to-have: %.1f\n", score.Breakdown.NiceToHaveComponent))

	for _, bonus := range score.Breakdown.Bonuses {
		sb.WriteString(fmt.Sprintf("  %s\n", bonus))
	}
	for _, penalty := range score.Breakdown.Penalties {
		sb.WriteString(fmt.Sprintf("  %s\n", penalty))
	}

	if score.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(score.Explanation)
	}

	p.printBox("MATCH SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChangeLog outputs the logged CV changes with review indicators.
func (p *Printer) PrintChangeLog(changes []types.ChangeLogEntry) {
	if len(changes) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Logged %d changes:\n\n", len(changes)))

	count := min(len(changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		change := changes[i]
		text := change.New
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", change.Section, text))

		marks := []string{string(change.ChangeType), change.Confidence}
		if change.RequiresReview {
			marks = append(marks, "review")
		}
		sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(marks, " ")))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more changes", len(changes)-maxItemsToShow))
	}

	p.printBox("CHANGE LOG", sb.String())
}

// PrintBorderlineItems outputs the items flagged for user review.
func (p *Printer) PrintBorderlineItems(items []types.BorderlineItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d items need review:\n\n", len(items)))

	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		content := item.Content
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", content))
		sb.WriteString(fmt.Sprintf("  [%s risk: %s]\n", item.RiskLevel, item.Category))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more items", len(items)-maxItemsToShow))
	}

	p.printBox("BORDERLINE ITEMS", sb.String())
}

// PrintViolations outputs fabrication violations and QA warnings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations, warnings []string) {
	if len(violations) == 0 && len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if len(violations) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))
		for _, v := range violations {
			if len(v) > 45 {
				v = v[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", v))
		}
	}
	if len(warnings) > 0 {
		if len(violations) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d warnings:\n\n", len(warnings)))
		for _, w := range warnings {
			if len(w) > 45 {
				w = w[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", w))
		}
	}

	p.printBox("QUALITY CHECK RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
