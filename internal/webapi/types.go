package webapi

import (
	"time"

	"github.com/salscrudato/deckard/internal/models"
)

// AnalysisSummary is the API response for a single stored analysis in the list.
type AnalysisSummary struct {
	ID            string    `json:"id"`
	Deck          string    `json:"deck"`
	SlideCount    int       `json:"slideCount"`
	Flagged       int       `json:"flagged"`
	Fallbacks     int       `json:"fallbacks"`
	Pinned        int       `json:"pinned"`
	AvgConfidence float64   `json:"avgConfidence"`
	Duration      float64   `json:"duration"`
	Timestamp     time.Time `json:"timestamp"`
}

// AnalysisDetail is the API response for a single analysis with per-slide results.
type AnalysisDetail struct {
	AnalysisSummary
	Slides []SlideResult `json:"slides"`
}

// SlideResult is a per-slide result within an analysis.
type SlideResult struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Status        string               `json:"status"`
	Layout        string               `json:"layout"`
	Pinned        bool                 `json:"pinned"`
	Confidence    float64              `json:"confidence"`
	Reasoning     []string             `json:"reasoning"`
	Visualization string               `json:"visualization"`
	Optimizations []OptimizationResult `json:"optimizations"`
}

// OptimizationResult is a single content optimization suggestion.
type OptimizationResult struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// SummaryResponse is the aggregate KPI response across stored analyses.
type SummaryResponse struct {
	TotalAnalyses int     `json:"totalAnalyses"`
	TotalSlides   int     `json:"totalSlides"`
	CleanRate     float64 `json:"cleanRate"`
	AvgConfidence float64 `json:"avgConfidence"`
	AvgDuration   float64 `json:"avgDuration"`
}

// RuleInfo describes one scoring rule. The predicate itself is code and
// stays server-side; everything else is exposed.
type RuleInfo struct {
	ID        string   `json:"id"`
	Layouts   []string `json:"layouts"`
	Weight    float64  `json:"weight"`
	Rationale string   `json:"rationale"`
}

// RulesResponse is the rule table response.
type RulesResponse struct {
	Fingerprint   string     `json:"fingerprint"`
	EngineVersion string     `json:"engineVersion"`
	Rules         []RuleInfo `json:"rules"`
}

// RecommendResponse pairs the extracted signals with the engine's
// recommendation for one slide.
type RecommendResponse struct {
	Signals        models.ContentSignals `json:"signals"`
	Recommendation models.Recommendation `json:"recommendation"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
