package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMarkdownReport(t *testing.T) {
	report := FormatMarkdownReport(newTestOutcome())

	assert.Contains(t, report, "# Deck Analysis: Q3 Review")
	assert.Contains(t, report, "**Status**: 2 of 3 slides flagged")
	assert.Contains(t, report, "**Avg confidence**: 0.83 - Solid (0.60-0.85)")
	assert.Contains(t, report, "| 1 | intro | ok | title-bullets | 1.00 | text |")
	assert.Contains(t, report, "| 2 | vision | low-confidence | timeline (pinned) | 1.00 | text |")
	assert.Contains(t, report, "| 3 | blank | fallback | title-bullets | 0.50 | text |")
	assert.Contains(t, report, "## Layout distribution")
	assert.Contains(t, report, "- title-bullets: 2")
	assert.Contains(t, report, "- timeline: 1")
	assert.Contains(t, report, "## Suggested optimizations")
	assert.Contains(t, report, "- accessibility: 3")
}

func TestFormatMarkdownReport_CleanDeck(t *testing.T) {
	outcome := newTestOutcome()
	outcome.Digest.Flagged = 0

	report := FormatMarkdownReport(outcome)
	assert.Contains(t, report, "**Status**: all 3 slides look good")
}

func TestSortedCounts(t *testing.T) {
	got := sortedCounts(map[string]int{"chart": 1, "title-bullets": 3, "aside": 1})
	assert.Equal(t, []string{"title-bullets", "aside", "chart"}, got)
}
