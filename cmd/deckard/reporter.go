package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/salscrudato/deckard/internal/models"
)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// statusGlyph maps a slide status to its one-character marker.
func statusGlyph(status models.AnalysisStatus) string {
	switch status {
	case models.StatusOK:
		return "✓"
	case models.StatusLowConfidence:
		return "⚠"
	default:
		return "✗"
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func printSummary(outcome *models.DeckOutcome) {
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println(" ANALYSIS RESULTS")
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println()

	digest := outcome.Digest

	fmt.Printf("Deck:            %s\n", outcome.DeckName)
	fmt.Printf("Slides:          %d\n", digest.SlideCount)
	fmt.Printf("Flagged:         %d\n", digest.Flagged)
	fmt.Printf("Fallbacks:       %d\n", digest.Fallbacks)
	fmt.Printf("Pinned:          %d\n", digest.Pinned)
	fmt.Printf("Avg Confidence:  %.2f\n", digest.AvgConfidence)
	fmt.Printf("Range:           %.2f - %.2f\n", digest.MinConfidence, digest.MaxConfidence)
	fmt.Printf("Std Dev:         %.4f\n", digest.StdDevConfidence)

	duration := time.Duration(digest.DurationMs) * time.Millisecond
	fmt.Printf("Duration:        %s\n", formatDuration(duration))
	fmt.Println()

	if len(digest.LayoutCounts) > 0 {
		fmt.Printf("Layout Mix:      %s\n", formatTally(digest.LayoutCounts))
		fmt.Println()
	}

	// Per-slide breakdown
	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Println(" PER-SLIDE BREAKDOWN")
	fmt.Println("-" + strings.Repeat("-", 50))
	for _, sa := range outcome.Slides {
		marker := ""
		if sa.PinnedLayout != "" {
			marker = " [pinned]"
		}
		if sa.CacheHit {
			marker += " [cached]"
		}
		fmt.Printf("  %s %s → %s (%.2f)%s\n",
			statusGlyph(sa.Status), slideLabel(sa), sa.EffectiveLayout(),
			sa.Recommendation.Primary.Confidence, marker)
		for _, opt := range sa.Recommendation.Optimizations {
			fmt.Printf("      %s: %s\n", opt.Type, opt.Description)
		}
	}
	fmt.Println()

	// Show flagged slides with the engine's reasoning
	flagged := outcome.FlaggedSlides()
	if len(flagged) > 0 {
		fmt.Println("Flagged Slides:")
		for _, sa := range flagged {
			fmt.Printf("  - %s (%s)\n", slideLabel(sa), sa.Status)
			for _, reason := range sa.Recommendation.Primary.Reasoning {
				fmt.Printf("    • %s\n", reason)
			}
			for _, alt := range sa.Recommendation.Alternatives {
				fmt.Printf("    alternative: %s (%.2f)\n", alt.LayoutID, alt.Confidence)
			}
		}
		fmt.Println()
	}
}

// slideLabel prefers the slide ID and falls back to its title.
func slideLabel(sa models.SlideAnalysis) string {
	if sa.SlideID != "" {
		return sa.SlideID
	}
	if sa.Title != "" {
		return sa.Title
	}
	return fmt.Sprintf("slide %d", sa.Index+1)
}

// formatTally renders a count map as "chart=3, title-bullets=2", largest
// first, ties broken by name for stable output.
func formatTally(counts map[string]int) string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s=%d", e.name, e.count))
	}
	return strings.Join(parts, ", ")
}

// terminalWidth returns the display width of stdout, or fallback when
// stdout is not a terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// printDeckComparison renders a comparison table for multi-deck runs.
func printDeckComparison(results []deckResult) {
	// Shrink the name column on narrow terminals; the numeric columns
	// need about 40 cells.
	nameWidth := 24
	if w := terminalWidth(0); w > 0 && w-40 < nameWidth {
		nameWidth = max(w-40, 12)
	}

	fmt.Println()
	fmt.Println("═" + strings.Repeat("═", 62))
	fmt.Println(" DECK COMPARISON")
	fmt.Println("═" + strings.Repeat("═", 62))
	fmt.Println()
	fmt.Printf("%s  %-8s %-9s %-10s %s\n", padRight("Deck", nameWidth), "Slides", "Flagged", "Avg Conf", "Duration")
	fmt.Println("─" + strings.Repeat("─", 62))

	for _, dr := range results {
		name := dr.name
		if dr.outcome != nil {
			name = dr.outcome.DeckName
		}
		slides, flaggedCount := 0, 0
		avgConf := 0.0
		durationMs := int64(0)
		if dr.outcome != nil {
			slides = dr.outcome.Digest.SlideCount
			flaggedCount = dr.outcome.Digest.Flagged
			avgConf = dr.outcome.Digest.AvgConfidence
			durationMs = dr.outcome.Digest.DurationMs
		}
		duration := time.Duration(durationMs) * time.Millisecond
		fmt.Printf("%s  %-8d %-9d %-10.2f %s\n",
			padRight(name, nameWidth), slides, flaggedCount, avgConf, formatDuration(duration))
	}
	fmt.Println()
}
