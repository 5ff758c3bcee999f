package rules

import (
	"github.com/salscrudato/deckard/internal/models"
)

// Builtin returns the canonical rule table. Weights are tuning values, not
// contracts: tests assert ordering and threshold behavior rather than
// literal weight equality. Every condition is false on the zero signal
// vector, which is what keeps fully empty slides on the fallback path.
func Builtin() []Rule {
	return []Rule{
		{
			ID:        "text-heavy",
			When:      func(s models.ContentSignals) bool { return s.TextDensity == models.DensityHigh },
			Layouts:   []string{models.LayoutTitleParagraph, models.LayoutTwoColumn},
			Weight:    2.0,
			Rationale: "Dense prose reads better as a paragraph block or split across columns",
		},
		{
			ID: "text-medium",
			When: func(s models.ContentSignals) bool {
				return s.TextDensity == models.DensityMedium && s.BulletCount == 0
			},
			Layouts:   []string{models.LayoutTitleParagraph},
			Weight:    1.2,
			Rationale: "A moderate amount of prose fits a single paragraph block",
		},
		{
			ID:        "bullet-heavy",
			When:      func(s models.ContentSignals) bool { return s.BulletCount >= 4 },
			Layouts:   []string{models.LayoutTitleBullets, models.LayoutTwoColumn},
			Weight:    2.5,
			Rationale: "Four or more bullets call for a list-first layout",
		},
		{
			ID: "bullet-light",
			When: func(s models.ContentSignals) bool {
				return s.BulletCount >= 1 && s.BulletCount <= 3
			},
			Layouts:   []string{models.LayoutTitleBullets},
			Weight:    1.5,
			Rationale: "A short list reads naturally as bullets",
		},
		{
			ID:        "image-content",
			When:      func(s models.ContentSignals) bool { return s.HasImages },
			Layouts:   []string{models.LayoutImageRight, models.LayoutImageFull, models.LayoutTwoColumn},
			Weight:    2.0,
			Rationale: "Images deserve a layout with a dedicated image region",
		},
		{
			ID:        "chart-data",
			When:      func(s models.ContentSignals) bool { return s.HasCharts },
			Layouts:   []string{models.LayoutChart, models.LayoutMetricsDashboard},
			Weight:    2.6,
			Rationale: "Chart data is present and should lead the slide",
		},
		{
			ID:        "table-data",
			When:      func(s models.ContentSignals) bool { return s.HasTables },
			Layouts:   []string{models.LayoutTable, models.LayoutComparisonTable},
			Weight:    2.4,
			Rationale: "Tabular data is present and should lead the slide",
		},
		{
			ID:        "numeric-data",
			When:      func(s models.ContentSignals) bool { return s.HasNumericData },
			Layouts:   []string{models.LayoutChart, models.LayoutTable, models.LayoutComparisonTable},
			Weight:    1.8,
			Rationale: "Numeric content benefits from a chart or table treatment",
		},
		{
			ID:        "timeline-content",
			When:      func(s models.ContentSignals) bool { return s.HasTimeline },
			Layouts:   []string{models.LayoutTimeline, models.LayoutProcessFlow},
			Weight:    2.8,
			Rationale: "Dated milestones map directly onto a timeline",
		},
		{
			ID:        "sequential-content",
			When:      func(s models.ContentSignals) bool { return s.HasSequentialData },
			Layouts:   []string{models.LayoutProcessFlow, models.LayoutTimeline},
			Weight:    1.6,
			Rationale: "Ordered steps suggest a flow or timeline treatment",
		},
		{
			ID:        "comparative-content",
			When:      func(s models.ContentSignals) bool { return s.HasComparativeData },
			Layouts:   []string{models.LayoutTwoColumn, models.LayoutComparisonTable},
			Weight:    2.2,
			Rationale: "Contrasting content fits side-by-side layouts",
		},
		{
			ID:        "quote-content",
			When:      func(s models.ContentSignals) bool { return s.HasQuotes },
			Layouts:   []string{models.LayoutQuote},
			Weight:    2.6,
			Rationale: "A quotation carries the slide on its own",
		},
		{
			ID: "minimal-content",
			When: func(s models.ContentSignals) bool {
				return s.TextDensity == models.DensityLow && s.BulletCount == 0 &&
					!s.HasCharts && !s.HasTables && !s.HasTimeline &&
					!s.HasImages && !s.HasNumericData && !s.HasQuotes &&
					s.ComplexityScore > 0
			},
			Layouts:   []string{models.LayoutTitle},
			Weight:    1.4,
			Rationale: "A nearly empty slide works best as a simple statement",
		},
		{
			ID: "low-complexity",
			When: func(s models.ContentSignals) bool {
				return s.ComplexityScore > 0 && s.ComplexityScore < 0.15
			},
			Layouts:   []string{models.LayoutTitle, models.LayoutQuote, models.LayoutHero},
			Weight:    1.6,
			Rationale: "Light content suits a minimal statement layout",
		},
		{
			ID:        "high-complexity",
			When:      func(s models.ContentSignals) bool { return s.ComplexityScore > 0.7 },
			Layouts:   []string{models.LayoutTwoColumn, models.LayoutTabbed},
			Weight:    1.8,
			Rationale: "Very dense content needs splitting across columns or tabs",
		},
		{
			ID:        "data-rich",
			When:      func(s models.ContentSignals) bool { return s.HasCharts && s.HasTables },
			Layouts:   []string{models.LayoutMetricsDashboard, models.LayoutTabbed},
			Weight:    2.0,
			Rationale: "Charts and tables together suggest a dashboard treatment",
		},
		{
			ID:        "persuasive-intent",
			When:      func(s models.ContentSignals) bool { return s.PrimaryIntent == models.IntentPersuade },
			Layouts:   []string{models.LayoutQuote, models.LayoutHero},
			Weight:    0.8,
			Rationale: "Persuasive content lands harder as a bold statement",
		},
		{
			ID:        "showcase-intent",
			When:      func(s models.ContentSignals) bool { return s.PrimaryIntent == models.IntentShowcase },
			Layouts:   []string{models.LayoutImageFull, models.LayoutHero, models.LayoutMetricsDashboard},
			Weight:    1.0,
			Rationale: "Showcase content favors full-bleed visuals",
		},
		{
			ID:        "explainer-intent",
			When:      func(s models.ContentSignals) bool { return s.PrimaryIntent == models.IntentExplain },
			Layouts:   []string{models.LayoutProcessFlow, models.LayoutTwoColumn},
			Weight:    0.8,
			Rationale: "Explanatory content benefits from a step-wise layout",
		},
	}
}
