// Package signals turns raw slide content into the feature vector the
// layout rules evaluate against. Extraction is deliberately forgiving:
// fields that are missing or carry the wrong type contribute nothing
// instead of failing.
package signals

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/salscrudato/deckard/internal/models"
)

const (
	densityMediumThreshold = 200
	densityHighThreshold   = 500

	complexityTextSpan   = 500.0
	complexityBulletSpan = 10.0

	complexityTextWeight     = 0.30
	complexityBulletWeight   = 0.20
	complexityChartWeight    = 0.20
	complexityTableWeight    = 0.15
	complexityTimelineWeight = 0.10
	complexityImageWeight    = 0.05

	// A single number in prose is usually a year or a version, not data.
	minNumericTokens = 2
)

var comparativePatterns = []string{
	" vs ",
	"vs.",
	"versus",
	"compared to",
	"comparison",
	"pros and cons",
	"advantages",
	"disadvantages",
	"better than",
	"worse than",
	"trade-off",
	"tradeoff",
}

var sequentialPatterns = []string{
	"step",
	"phase",
	"stage",
	"roadmap",
	"milestone",
	"timeline",
	"workflow",
	"first",
	"then",
	"next",
	"finally",
}

var quoteMarkerPatterns = []string{
	"\"",
	"“",
	"”",
	"according to",
	"once said",
	"in the words of",
}

var persuadePatterns = []string{
	"should ",
	"must ",
	"we need",
	"benefit",
	"advantage",
	"why choose",
	"call to action",
	"act now",
	"recommend",
	"opportunity",
}

var showcasePatterns = []string{
	"introducing",
	"announcing",
	"showcase",
	"portfolio",
	"gallery",
	"demo",
	"meet the",
	"unveiling",
}

var explainPatterns = []string{
	"how to",
	"how it works",
	"step by step",
	"process",
	"guide",
	"tutorial",
	"explanation",
	"works by",
	"under the hood",
}

// Extract derives the signal vector from one slide's content. It is a pure
// function of its input: identical content always yields the identical
// vector, and no field combination can make it fail.
func Extract(content models.SlideContent) models.ContentSignals {
	scan := FlattenText(content)
	textLen := 0
	for _, part := range textParts(content) {
		textLen += utf8.RuneCountInString(part)
	}

	sig := models.ContentSignals{
		TextDensity: textDensityFor(textLen),
		BulletCount: len(content.Bullets),
		HasImages:   len(content.Images) > 0,
		HasCharts:   content.Chart != nil,
		HasTables:   content.Table != nil || content.ComparisonTable != nil,
		HasTimeline: len(content.Timeline) > 0,
	}

	sig.HasQuotes = content.Quote != "" || containsAny(scan, quoteMarkerPatterns)
	sig.HasComparativeData = content.ComparisonTable != nil ||
		(content.Left != nil && content.Right != nil) ||
		containsAny(scan, comparativePatterns)
	sig.HasSequentialData = sig.HasTimeline || containsAny(scan, sequentialPatterns)
	sig.HasNumericData = detectNumericData(content, scan)

	sig.ComplexityScore = complexityScore(textLen, sig)
	sig.ReadabilityScore = readabilityScore(proseText(content))
	sig.PrimaryIntent = detectIntent(scan, sig.HasImages, textLen)

	return sig
}

func textDensityFor(textLen int) models.TextDensity {
	switch {
	case textLen < densityMediumThreshold:
		return models.DensityLow
	case textLen < densityHighThreshold:
		return models.DensityMedium
	default:
		return models.DensityHigh
	}
}

func complexityScore(textLen int, sig models.ContentSignals) float64 {
	score := complexityTextWeight * min(float64(textLen)/complexityTextSpan, 1.0)
	score += complexityBulletWeight * min(float64(sig.BulletCount)/complexityBulletSpan, 1.0)
	if sig.HasCharts {
		score += complexityChartWeight
	}
	if sig.HasTables {
		score += complexityTableWeight
	}
	if sig.HasTimeline {
		score += complexityTimelineWeight
	}
	if sig.HasImages {
		score += complexityImageWeight
	}
	return min(score, 1.0)
}

// readabilityScore rates average sentence length: 1.0 for the 15 to 20
// word sweet spot, 0.8 for anything between 10 and 30, 0.5 outside that.
// Prose with no sentences is not penalized.
func readabilityScore(prose string) float64 {
	sentences := splitSentences(prose)
	if len(sentences) == 0 {
		return 1.0
	}
	words := 0
	for _, s := range sentences {
		words += len(strings.Fields(s))
	}
	avg := float64(words) / float64(len(sentences))
	switch {
	case avg >= 15 && avg <= 20:
		return 1.0
	case avg >= 10 && avg <= 30:
		return 0.8
	default:
		return 0.5
	}
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start:i]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func detectNumericData(content models.SlideContent, scan string) bool {
	if NumericPointCount(content.Chart) > 0 {
		return true
	}
	if content.Table != nil && numericCellCount(content.Table.Rows) > 0 {
		return true
	}
	if content.ComparisonTable != nil && numericCellCount(content.ComparisonTable.Rows) > 0 {
		return true
	}
	return CountNumericTokens(scan) >= minNumericTokens
}

// Intent precedence is fixed: showcase, then persuade, then explain, with
// inform as the default.
func detectIntent(scan string, hasImages bool, textLen int) models.ContentIntent {
	switch {
	case containsAny(scan, showcasePatterns) || (hasImages && textLen < densityMediumThreshold):
		return models.IntentShowcase
	case containsAny(scan, persuadePatterns):
		return models.IntentPersuade
	case containsAny(scan, explainPatterns):
		return models.IntentExplain
	default:
		return models.IntentInform
	}
}

// FlattenText joins every piece of visible slide text into one scan string
// for keyword matching. Speaker notes are not shown to the audience and are
// excluded.
func FlattenText(c models.SlideContent) string {
	parts := textParts(c)
	if c.Quote != "" {
		parts = append(parts, c.Quote)
	}
	if c.Attribution != "" {
		parts = append(parts, c.Attribution)
	}
	for _, entry := range c.Timeline {
		for _, s := range []string{entry.Date, entry.Title, entry.Description} {
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	if c.Chart != nil && c.Chart.Title != "" {
		parts = append(parts, c.Chart.Title)
	}
	if c.Table != nil {
		parts = append(parts, c.Table.Headers...)
	}
	if c.ComparisonTable != nil {
		parts = append(parts, c.ComparisonTable.Headers...)
	}
	return strings.Join(parts, "\n")
}

// textParts is the narrower body used for length measures: title,
// subtitle, paragraph, bullets and column text.
func textParts(c models.SlideContent) []string {
	parts := make([]string, 0, 8)
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(c.Title)
	add(c.Subtitle)
	add(c.Paragraph)
	for _, b := range c.Bullets {
		add(b)
	}
	for _, col := range []*models.Column{c.Left, c.Right} {
		if col == nil {
			continue
		}
		add(col.Heading)
		add(col.Paragraph)
		for _, b := range col.Bullets {
			add(b)
		}
	}
	return parts
}

func proseText(c models.SlideContent) string {
	parts := make([]string, 0, 3)
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(c.Paragraph)
	if c.Left != nil {
		add(c.Left.Paragraph)
	}
	if c.Right != nil {
		add(c.Right.Paragraph)
	}
	return strings.Join(parts, " ")
}

func containsAny(text string, patterns []string) bool {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// CountNumericTokens counts whitespace-separated tokens that parse as
// numbers once common currency and punctuation decoration is stripped.
func CountNumericTokens(text string) int {
	count := 0
	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, "$€£%(),;:.")
		token = strings.ReplaceAll(token, ",", "")
		if token == "" {
			continue
		}
		if _, err := strconv.ParseFloat(token, 64); err == nil {
			count++
		}
	}
	return count
}

// NumericPointCount counts the chart data points that coerce to numbers.
// A nil chart or one full of junk values counts zero.
func NumericPointCount(chart *models.Chart) int {
	if chart == nil {
		return 0
	}
	count := 0
	for _, series := range chart.Series {
		for _, point := range series.Data {
			if _, ok := CoerceFloat(point); ok {
				count++
			}
		}
	}
	return count
}

func numericCellCount(rows [][]any) int {
	count := 0
	for _, row := range rows {
		for _, cell := range row {
			if _, ok := CoerceFloat(cell); ok {
				count++
			}
		}
	}
	return count
}

// CoerceFloat converts the scalar types YAML and JSON decoding produce
// into a float64. Strings are parsed after stripping decoration so that
// "42%" and "$1.5" still count as numeric.
func CoerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		token := strings.Trim(strings.TrimSpace(n), "$€£%")
		token = strings.ReplaceAll(token, ",", "")
		if token == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
