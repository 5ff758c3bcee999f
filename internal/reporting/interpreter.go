package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/salscrudato/deckard/internal/models"
)

// InterpretConfidence returns a plain-language label for a confidence
// value on the 0 to 1 scale.
func InterpretConfidence(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return "Strong (0.85-1.00)"
	case confidence >= 0.6:
		return "Solid (0.60-0.85)"
	case confidence >= 0.4:
		return "Tentative (0.40-0.60)"
	default:
		return "Weak (<0.40)"
	}
}

// InterpretCleanRate returns a human-readable explanation of the share of
// slides that passed without flags (0-1).
func InterpretCleanRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All slides passed cleanly (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most slides passed cleanly (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the slides passed cleanly (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few slides passed cleanly (%.0f%%)", pct)
	}
}

// InterpretFallbacks explains what fallback slides mean and what to do
// about them.
func InterpretFallbacks(fallbacks, total int) string {
	if fallbacks == 0 {
		return "No slide needed the fallback layout."
	}
	return fmt.Sprintf("%d of %d slides fell back to the default layout. Give those slides more structure (bullets, data, an image) so the rules have something to grab.", fallbacks, total)
}

// FormatInterpretation produces a full plain-language report from a
// DeckOutcome.
func FormatInterpretation(outcome *models.DeckOutcome) string {
	var b strings.Builder

	d := outcome.Digest
	duration := time.Duration(d.DurationMs) * time.Millisecond

	b.WriteString("=== Interpretation ===\n\n")

	b.WriteString(fmt.Sprintf("Avg Confidence: %.2f - %s\n", d.AvgConfidence, InterpretConfidence(d.AvgConfidence)))
	cleanRate := 0.0
	if d.SlideCount > 0 {
		cleanRate = float64(d.SlideCount-d.Flagged) / float64(d.SlideCount)
	}
	b.WriteString(fmt.Sprintf("Clean Slides:   %s\n", InterpretCleanRate(cleanRate)))
	b.WriteString(fmt.Sprintf("Duration:       %v\n", duration))

	if d.SlideCount > 0 {
		b.WriteString(fmt.Sprintf("Slides:         %d ok, %d low-confidence, %d fallback out of %d total\n",
			d.SlideCount-d.Flagged, d.Flagged-d.Fallbacks, d.Fallbacks, d.SlideCount))
	}

	b.WriteString("\n" + InterpretFallbacks(d.Fallbacks, d.SlideCount) + "\n")

	// Per-slide interpretation
	if len(outcome.Slides) > 0 {
		b.WriteString("\nPer-Slide Interpretation:\n")
		for _, s := range outcome.Slides {
			icon := "✓"
			if s.Status != models.StatusOK {
				icon = "✗"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", icon, s.SlideID, s.Status))
			if s.PinnedLayout != "" {
				b.WriteString(fmt.Sprintf("    Layout: %s (pinned; the rules preferred %s)\n",
					s.PinnedLayout, s.Recommendation.Primary.LayoutID))
			} else {
				b.WriteString(fmt.Sprintf("    Layout: %s at confidence %.2f\n",
					s.Recommendation.Primary.LayoutID, s.Recommendation.Primary.Confidence))
			}
		}
	}

	return b.String()
}
