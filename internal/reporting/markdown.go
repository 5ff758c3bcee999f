package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/salscrudato/deckard/internal/models"
)

// FormatMarkdownReport renders a DeckOutcome as a markdown document: a
// status header, a per-slide table, the layout distribution and the
// optimization rollup.
func FormatMarkdownReport(outcome *models.DeckOutcome) string {
	var b strings.Builder

	d := outcome.Digest

	b.WriteString(fmt.Sprintf("# Deck Analysis: %s\n\n", outcome.DeckName))

	if d.Flagged == 0 {
		b.WriteString(fmt.Sprintf("**Status**: all %d slides look good\n\n", d.SlideCount))
	} else {
		b.WriteString(fmt.Sprintf("**Status**: %d of %d slides flagged\n\n", d.Flagged, d.SlideCount))
	}
	b.WriteString(fmt.Sprintf("**Avg confidence**: %.2f - %s\n\n", d.AvgConfidence, InterpretConfidence(d.AvgConfidence)))
	b.WriteString(fmt.Sprintf("Analyzed %d slides in %v on %s.\n\n",
		d.SlideCount,
		time.Duration(d.DurationMs)*time.Millisecond,
		outcome.Timestamp.Format(time.RFC3339)))

	b.WriteString("## Slides\n\n")
	b.WriteString("| # | Slide | Status | Layout | Confidence | Visualization |\n")
	b.WriteString("|---|-------|--------|--------|------------|---------------|\n")
	for _, s := range outcome.Slides {
		layout := s.EffectiveLayout()
		if s.PinnedLayout != "" {
			layout += " (pinned)"
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %.2f | %s |\n",
			s.Index+1, s.SlideID, s.Status, layout,
			s.Recommendation.Primary.Confidence, s.Visualization.Type))
	}

	if len(d.LayoutCounts) > 0 {
		b.WriteString("\n## Layout distribution\n\n")
		for _, name := range sortedCounts(d.LayoutCounts) {
			b.WriteString(fmt.Sprintf("- %s: %d\n", name, d.LayoutCounts[name]))
		}
	}

	if len(d.OptimizationCounts) > 0 {
		b.WriteString("\n## Suggested optimizations\n\n")
		for _, name := range sortedCounts(d.OptimizationCounts) {
			b.WriteString(fmt.Sprintf("- %s: %d\n", name, d.OptimizationCounts[name]))
		}
	}

	return b.String()
}

// sortedCounts orders tally keys highest count first, ties alphabetical,
// so report sections do not depend on map iteration.
func sortedCounts(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
