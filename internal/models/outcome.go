package models

import (
	"time"
)

// AnalysisStatus classifies the outcome of analyzing one slide.
type AnalysisStatus string

const (
	StatusOK AnalysisStatus = "ok"
	// StatusLowConfidence marks a slide whose primary confidence fell below
	// the configured gate.
	StatusLowConfidence AnalysisStatus = "low-confidence"
	// StatusFallback marks a slide that matched no rule at all.
	StatusFallback AnalysisStatus = "fallback"
)

// SlideAnalysis is the full analysis result for one slide.
type SlideAnalysis struct {
	Index          int                         `json:"index"`
	SlideID        string                      `json:"slide_id,omitempty"`
	Title          string                      `json:"title,omitempty"`
	Status         AnalysisStatus              `json:"status"`
	Signals        ContentSignals              `json:"signals"`
	Recommendation Recommendation              `json:"recommendation"`
	Visualization  VisualizationRecommendation `json:"visualization"`
	// PinnedLayout is set when the slide's options locked a layout; the
	// recommendation is still computed and recorded for comparison.
	PinnedLayout string `json:"pinned_layout,omitempty"`
	CacheHit     bool   `json:"cache_hit,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
}

// EffectiveLayout is the layout the renderer should use: the pinned layout
// when one is set, otherwise the primary recommendation.
func (s *SlideAnalysis) EffectiveLayout() string {
	if s.PinnedLayout != "" {
		return s.PinnedLayout
	}
	return s.Recommendation.Primary.LayoutID
}

// AnalysisSetup records how a deck analysis was configured.
type AnalysisSetup struct {
	Workers            int     `json:"workers"`
	Parallel           bool    `json:"parallel"`
	MinConfidence      float64 `json:"min_confidence"`
	RulesetFingerprint string  `json:"ruleset_fingerprint"`
	EngineVersion      string  `json:"engine_version"`
}

// DeckDigest aggregates the per-slide results of one deck analysis.
// Confidence figures are over primary recommendation confidences.
type DeckDigest struct {
	SlideCount          int            `json:"slide_count"`
	Flagged             int            `json:"flagged"`
	Fallbacks           int            `json:"fallbacks"`
	Pinned              int            `json:"pinned"`
	AvgConfidence       float64        `json:"avg_confidence"`
	MinConfidence       float64        `json:"min_confidence"`
	MaxConfidence       float64        `json:"max_confidence"`
	StdDevConfidence    float64        `json:"std_dev_confidence"`
	LayoutCounts        map[string]int `json:"layout_counts"`
	VisualizationCounts map[string]int `json:"visualization_counts"`
	OptimizationCounts  map[string]int `json:"optimization_counts"`
	DurationMs          int64          `json:"duration_ms"`
}

// DeckOutcome is the complete result of analyzing a deck.
type DeckOutcome struct {
	DeckName  string          `json:"deck_name"`
	Timestamp time.Time       `json:"timestamp"`
	Setup     AnalysisSetup   `json:"setup"`
	Digest    DeckDigest      `json:"digest"`
	Slides    []SlideAnalysis `json:"slides"`
}

// FlaggedSlides returns the slides whose status is not ok, in deck order.
func (o *DeckOutcome) FlaggedSlides() []SlideAnalysis {
	var out []SlideAnalysis
	for _, s := range o.Slides {
		if s.Status != StatusOK {
			out = append(out, s)
		}
	}
	return out
}

// HasFlagged reports whether any slide fell below the confidence gate or
// hit the fallback path.
func (o *DeckOutcome) HasFlagged() bool {
	for _, s := range o.Slides {
		if s.Status != StatusOK {
			return true
		}
	}
	return false
}
