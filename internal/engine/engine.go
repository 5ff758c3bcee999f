// Package engine evaluates the rule table against extracted signals and
// turns the scores into a ranked layout recommendation. Every entry point
// is total and deterministic: any content yields exactly one primary
// layout, identical input yields byte-identical output, and nothing here
// reads clocks, randomness, or ambient state.
package engine

import (
	"fmt"
	"sort"

	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/rules"
	"github.com/salscrudato/deckard/internal/signals"
)

// ScoringVersion feeds cache keys; bump it when scoring semantics change
// in a way that should invalidate cached analyses.
const ScoringVersion = "v1"

const (
	fallbackConfidence = 0.5
	fallbackReason     = "Default fallback layout"
	maxAlternatives    = 3

	hierarchyBulletThreshold = 7
	preferredMaxBullets      = 5
	lowReadability           = 0.5
)

// Engine scores layouts for slide content using an injected rule registry.
// It is stateless apart from the immutable registry and safe for
// concurrent use.
type Engine struct {
	registry *rules.Registry
}

// New creates an engine over the given registry.
func New(registry *rules.Registry) *Engine {
	return &Engine{registry: registry}
}

// Registry returns the rule registry the engine scores with.
func (e *Engine) Registry() *rules.Registry {
	return e.registry
}

// candidate pairs a layout score with the strongest single rule weight
// that contributed to it, which is the second tie-break criterion.
type candidate struct {
	score     models.LayoutScore
	maxWeight float64
	maxReason string
}

// Evaluate runs every rule once and returns the accumulated score per
// layout. Scores are additive across rules; confidence is each layout's
// raw score divided by the highest raw score. When no rule fires the map
// holds only the fallback layout at confidence 0.5.
func (e *Engine) Evaluate(sig models.ContentSignals) map[string]*models.LayoutScore {
	cands := e.evaluate(sig)
	if len(cands) == 0 {
		fb := fallbackScore()
		return map[string]*models.LayoutScore{fb.LayoutID: &fb}
	}
	out := make(map[string]*models.LayoutScore, len(cands))
	for i := range cands {
		sc := cands[i].score
		out[sc.LayoutID] = &sc
	}
	return out
}

// Recommend extracts signals from content and builds the recommendation.
func (e *Engine) Recommend(content models.SlideContent) models.Recommendation {
	return e.RecommendSignals(signals.Extract(content))
}

// RecommendSignals builds the recommendation for an already extracted
// signal vector: one primary, up to three alternatives in rank order, and
// the optimization list.
func (e *Engine) RecommendSignals(sig models.ContentSignals) models.Recommendation {
	cands := e.evaluate(sig)
	if len(cands) == 0 {
		return models.Recommendation{
			Primary:       fallbackScore(),
			Optimizations: optimizations(sig),
		}
	}

	rankCandidates(cands)

	alts := make([]models.Alternative, 0, maxAlternatives)
	for _, c := range cands[1:] {
		if len(alts) == maxAlternatives {
			break
		}
		alts = append(alts, models.Alternative{
			LayoutID:   c.score.LayoutID,
			Confidence: c.score.Confidence,
			Reason:     c.maxReason,
		})
	}

	return models.Recommendation{
		Primary:       cands[0].score,
		Alternatives:  alts,
		Optimizations: optimizations(sig),
	}
}

func (e *Engine) evaluate(sig models.ContentSignals) []candidate {
	type accum struct {
		raw       float64
		reasoning []string
		maxWeight float64
		maxReason string
	}

	acc := make(map[string]*accum)
	// order records each layout's first proposal so the result does not
	// depend on map iteration.
	order := make([]string, 0, 8)

	for _, rule := range e.registry.Rules() {
		if !rule.When(sig) {
			continue
		}
		for _, layoutID := range rule.Layouts {
			a, ok := acc[layoutID]
			if !ok {
				a = &accum{}
				acc[layoutID] = a
				order = append(order, layoutID)
			}
			a.raw += rule.Weight
			a.reasoning = append(a.reasoning, rule.Rationale)
			if rule.Weight > a.maxWeight {
				a.maxWeight = rule.Weight
				a.maxReason = rule.Rationale
			}
		}
	}

	if len(order) == 0 {
		return nil
	}

	maxRaw := 0.0
	for _, id := range order {
		if acc[id].raw > maxRaw {
			maxRaw = acc[id].raw
		}
	}

	cands := make([]candidate, 0, len(order))
	for _, id := range order {
		a := acc[id]
		cands = append(cands, candidate{
			score: models.LayoutScore{
				LayoutID:   id,
				RawScore:   a.raw,
				Confidence: a.raw / maxRaw,
				Reasoning:  a.reasoning,
			},
			maxWeight: a.maxWeight,
			maxReason: a.maxReason,
		})
	}
	return cands
}

// rankCandidates orders by confidence, then by the strongest single
// contributing rule weight, then by catalog order. The last criterion
// makes ranking independent of rule table order and proposal order.
func rankCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.score.Confidence != b.score.Confidence {
			return a.score.Confidence > b.score.Confidence
		}
		if a.maxWeight != b.maxWeight {
			return a.maxWeight > b.maxWeight
		}
		return models.CatalogRank(a.score.LayoutID) < models.CatalogRank(b.score.LayoutID)
	})
}

func fallbackScore() models.LayoutScore {
	return models.LayoutScore{
		LayoutID:   models.FallbackLayout,
		RawScore:   0,
		Confidence: fallbackConfidence,
		Reasoning:  []string{fallbackReason},
	}
}

// optimizations derives content adjustments from signals alone. The
// accessibility entry is always present and always last; the rest appear
// in a fixed order so output stays stable.
func optimizations(sig models.ContentSignals) []models.Optimization {
	var opts []models.Optimization

	if sig.TextDensity == models.DensityHigh {
		opts = append(opts, models.Optimization{
			Type:        models.OptimizationSpacing,
			Description: "Trim body text or split the slide; dense text crowds any layout",
			Impact:      models.ImpactMedium,
		})
	}
	if sig.BulletCount > hierarchyBulletThreshold {
		opts = append(opts, models.Optimization{
			Type:        models.OptimizationHierarchy,
			Description: fmt.Sprintf("Cap the list at %d bullets and group the rest under subheadings", preferredMaxBullets),
			Impact:      models.ImpactHigh,
		})
	}
	if sig.ReadabilityScore <= lowReadability {
		opts = append(opts, models.Optimization{
			Type:        models.OptimizationReadability,
			Description: "Rewrite sentences toward 15 to 20 words for easier scanning",
			Impact:      models.ImpactLow,
		})
	}
	if sig.HasCharts && sig.HasTables {
		opts = append(opts, models.Optimization{
			Type:        models.OptimizationSplitContent,
			Description: "Give the chart and the table separate slides so each can breathe",
			Impact:      models.ImpactMedium,
		})
	}

	opts = append(opts, models.Optimization{
		Type:        models.OptimizationAccessibility,
		Description: "Keep body text at 18pt or larger and maintain a 4.5:1 contrast ratio",
		Impact:      models.ImpactMedium,
	})

	return opts
}
