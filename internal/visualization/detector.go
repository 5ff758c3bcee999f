// Package visualization decides whether a slide's data reads best as a
// chart, a table, plain text, or a mix. It shares extraction primitives
// with the signals package but reports on its own 0 to 100 confidence
// scale; callers convert at the boundary if they need the engine's 0 to 1
// scale.
package visualization

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/signals"
)

// Detection thresholds. Both are strict: a score sitting exactly on the
// threshold is not enough.
const (
	ChartConfidenceThreshold = 60
	TableConfidenceThreshold = 70
)

const (
	textFallbackConfidence = 50

	chartPresenceScore = 65
	multiSeriesBonus   = 5
	numericTokenScore  = 5
	numericTokenCap    = 20
	trendBonus         = 10

	tablePresenceScore = 75
	rowScore           = 3
	rowScoreCap        = 15
	wideHeaderBonus    = 5

	longBulletThreshold = 100
)

var trendPatterns = []string{
	"growth",
	"increase",
	"decrease",
	"decline",
	"trend",
	"over time",
	"trajectory",
	"momentum",
}

var sharePatterns = []string{
	"share",
	"percent",
	"percentage",
	"distribution",
	"breakdown",
	"proportion",
	"mix",
}

// Detect classifies the slide's data presentation. It is total and
// deterministic; with no usable evidence it returns the text type at
// confidence 50 with at least one concrete suggestion.
func Detect(content models.SlideContent) models.VisualizationRecommendation {
	scan := signals.FlattenText(content)

	numericScore, numericWhy := numericEvidence(content, scan)
	structuredScore, structuredWhy := structuredEvidence(content)

	chartReady := numericScore > ChartConfidenceThreshold
	tableReady := structuredScore > TableConfidenceThreshold

	switch {
	case chartReady && tableReady:
		return models.VisualizationRecommendation{
			Type:       models.VisualizationMixed,
			Confidence: (numericScore + structuredScore) / 2,
			Reasoning:  fmt.Sprintf("%s; %s", numericWhy, structuredWhy),
			ChartHint:  chartHint(content, scan),
			TableHint:  tableHint(content),
		}
	case chartReady:
		return models.VisualizationRecommendation{
			Type:       models.VisualizationChart,
			Confidence: numericScore,
			Reasoning:  numericWhy,
			ChartHint:  chartHint(content, scan),
		}
	case tableReady:
		return models.VisualizationRecommendation{
			Type:       models.VisualizationTable,
			Confidence: structuredScore,
			Reasoning:  structuredWhy,
			TableHint:  tableHint(content),
		}
	default:
		return models.VisualizationRecommendation{
			Type:       models.VisualizationText,
			Confidence: textFallbackConfidence,
			Reasoning:  "No strong numeric or tabular signal; keep the content textual",
			TextHints:  textHints(content, numericScore),
		}
	}
}

func numericEvidence(content models.SlideContent, scan string) (int, string) {
	score := 0
	var parts []string

	points := signals.NumericPointCount(content.Chart)
	if points > 0 {
		score += chartPresenceScore
		parts = append(parts, fmt.Sprintf("chart with %d numeric points", points))
		if len(content.Chart.Series) > 1 {
			score += multiSeriesBonus
		}
	}
	if tokens := signals.CountNumericTokens(scan); tokens > 0 {
		score += min(tokens*numericTokenScore, numericTokenCap)
		parts = append(parts, fmt.Sprintf("%d numeric values in the text", tokens))
	}
	if containsAny(scan, trendPatterns) {
		score += trendBonus
		parts = append(parts, "trend language present")
	}

	if len(parts) == 0 {
		return 0, "no numeric evidence"
	}
	return min(score, 100), strings.Join(parts, ", ")
}

func structuredEvidence(content models.SlideContent) (int, string) {
	rows, headers := 0, 0
	present := false
	kind := "table"

	if content.Table != nil {
		present = true
		rows += len(content.Table.Rows)
		headers = max(headers, len(content.Table.Headers))
	}
	if content.ComparisonTable != nil {
		present = true
		kind = "comparison table"
		rows += len(content.ComparisonTable.Rows)
		headers = max(headers, len(content.ComparisonTable.Headers))
	}
	if !present {
		return 0, "no tabular evidence"
	}

	score := tablePresenceScore + min(rows*rowScore, rowScoreCap)
	if headers > 2 {
		score += wideHeaderBonus
	}
	return min(score, 100), fmt.Sprintf("%s with %d rows and %d columns", kind, rows, headers)
}

func chartHint(content models.SlideContent, scan string) *models.ChartHint {
	hint := &models.ChartHint{Kind: models.ChartKindBar}
	if content.Chart != nil {
		hint.SeriesCount = len(content.Chart.Series)
		hint.PointCount = signals.NumericPointCount(content.Chart)
	}
	switch {
	case containsAny(scan, trendPatterns):
		hint.Kind = models.ChartKindLine
	case containsAny(scan, sharePatterns) && hint.SeriesCount <= 1:
		hint.Kind = models.ChartKindPie
	}
	return hint
}

func tableHint(content models.SlideContent) *models.TableHint {
	hint := &models.TableHint{Kind: models.TableKindData}
	if content.Table != nil {
		hint.Rows = len(content.Table.Rows)
		hint.Columns = len(content.Table.Headers)
	}
	if content.ComparisonTable != nil {
		hint.Kind = models.TableKindComparison
		hint.Rows += len(content.ComparisonTable.Rows)
		if cols := len(content.ComparisonTable.Headers); cols > hint.Columns {
			hint.Columns = cols
		}
	}
	return hint
}

func textHints(content models.SlideContent, numericScore int) []string {
	var hints []string

	for _, b := range content.Bullets {
		if utf8.RuneCountInString(b) > longBulletThreshold {
			hints = append(hints, "Split bullets over 100 characters into shorter points")
			break
		}
	}
	if numericScore > 0 {
		hints = append(hints, "Highlight the few numeric values with large type instead of a chart")
	}
	if len(hints) == 0 {
		hints = append(hints, "Tighten the text and lead with the single key message")
	}
	return hints
}

func containsAny(text string, patterns []string) bool {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
