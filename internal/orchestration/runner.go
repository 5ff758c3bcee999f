// Package orchestration runs the analysis pipeline over whole decks:
// filtering, caching, per-slide recommendation and the digest that
// summarizes the run. The engine itself stays pure; everything stateful
// lives here.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/salscrudato/deckard/internal/cache"
	"github.com/salscrudato/deckard/internal/engine"
	"github.com/salscrudato/deckard/internal/metrics"
	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/signals"
	"github.com/salscrudato/deckard/internal/utils"
	"github.com/salscrudato/deckard/internal/visualization"
)

// DefaultMinConfidence is the gate under which a slide is flagged as
// low-confidence when no other gate is configured.
const DefaultMinConfidence = 0.4

const defaultWorkers = 4

// DeckRunner orchestrates the analysis of a deck.
type DeckRunner struct {
	engine        *engine.Engine
	minConfidence float64
	parallel      bool
	workers       int
	logger        *slog.Logger

	// Slide filtering
	slideFilters []string

	// Result caching
	cache *cache.Cache

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventDeckStart     EventType = "deck_start"
	EventDeckComplete  EventType = "deck_complete"
	EventSlideStart    EventType = "slide_start"
	EventSlideComplete EventType = "slide_complete"
	EventSlideCached   EventType = "slide_cached"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	SlideID     string
	SlideNum    int
	TotalSlides int
	Status      models.AnalysisStatus
	Layout      string
	Confidence  float64
	DurationMs  int64
}

// RunnerOption configures a DeckRunner.
type RunnerOption func(*DeckRunner)

// WithSlideFilters sets glob patterns used to select slides by ID or title.
func WithSlideFilters(patterns ...string) RunnerOption {
	return func(r *DeckRunner) {
		r.slideFilters = patterns
	}
}

// WithCache enables analysis caching
func WithCache(c *cache.Cache) RunnerOption {
	return func(r *DeckRunner) {
		r.cache = c
	}
}

// WithMinConfidence sets the confidence gate for flagging slides.
func WithMinConfidence(gate float64) RunnerOption {
	return func(r *DeckRunner) {
		if gate > 0 {
			r.minConfidence = gate
		}
	}
}

// WithParallel analyzes slides concurrently with the given worker count.
func WithParallel(workers int) RunnerOption {
	return func(r *DeckRunner) {
		r.parallel = true
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithLogger routes runner warnings through l.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *DeckRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewDeckRunner creates a new deck runner around eng.
func NewDeckRunner(eng *engine.Engine, opts ...RunnerOption) *DeckRunner {
	r := &DeckRunner{
		engine:        eng,
		minConfidence: DefaultMinConfidence,
		workers:       defaultWorkers,
		logger:        slog.Default(),
		listeners:     []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *DeckRunner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *DeckRunner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// AnalyzeDeck analyzes every selected slide and returns the outcome.
// Sequential and parallel modes produce the same analyses; only timing
// fields differ.
func (r *DeckRunner) AnalyzeDeck(ctx context.Context, deck *models.Deck) (*models.DeckOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	slides, err := r.selectSlides(deck)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides selected in deck %q", deck.Name)
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventDeckStart,
		TotalSlides: len(slides),
	})

	var analyses []models.SlideAnalysis
	if r.parallel {
		analyses = r.runConcurrent(slides)
	} else {
		analyses = r.runSequential(slides)
	}

	outcome := r.buildOutcome(deck, analyses, startTime)

	r.notifyProgress(ProgressEvent{
		EventType:  EventDeckComplete,
		DurationMs: time.Since(startTime).Milliseconds(),
	})

	return outcome, nil
}

func (r *DeckRunner) selectSlides(deck *models.Deck) ([]*models.Slide, error) {
	slides := make([]*models.Slide, 0, len(deck.Slides))
	for i := range deck.Slides {
		slides = append(slides, &deck.Slides[i])
	}

	if len(r.slideFilters) == 0 {
		return slides, nil
	}

	selected, err := FilterSlides(slides, r.slideFilters)
	if err != nil {
		return nil, fmt.Errorf("slide filter error: %w", err)
	}
	return selected, nil
}

func (r *DeckRunner) runSequential(slides []*models.Slide) []models.SlideAnalysis {
	analyses := make([]models.SlideAnalysis, 0, len(slides))

	for i, slide := range slides {
		r.notifyProgress(ProgressEvent{
			EventType:   EventSlideStart,
			SlideID:     slide.ID,
			SlideNum:    i + 1,
			TotalSlides: len(slides),
		})

		analysis, wasCached := r.runSlide(slide)
		analysis.Index = i
		analysis.CacheHit = wasCached
		analyses = append(analyses, analysis)

		r.notifySlideDone(analysis, i+1, len(slides), wasCached)
	}

	return analyses
}

func (r *DeckRunner) runConcurrent(slides []*models.Slide) []models.SlideAnalysis {
	workers := r.workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	type result struct {
		index    int
		analysis models.SlideAnalysis
	}

	resultChan := make(chan result, len(slides))
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, slide := range slides {
		wg.Add(1)
		go func(idx int, s *models.Slide) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			r.notifyProgress(ProgressEvent{
				EventType:   EventSlideStart,
				SlideID:     s.ID,
				SlideNum:    idx + 1,
				TotalSlides: len(slides),
			})

			analysis, wasCached := r.runSlide(s)
			analysis.Index = idx
			analysis.CacheHit = wasCached
			resultChan <- result{index: idx, analysis: analysis}

			r.notifySlideDone(analysis, idx+1, len(slides), wasCached)
		}(i, slide)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results in deck order
	results := make([]models.SlideAnalysis, len(slides))
	for res := range resultChan {
		results[res.index] = res.analysis
	}

	return results
}

func (r *DeckRunner) notifySlideDone(analysis models.SlideAnalysis, slideNum, total int, wasCached bool) {
	event := EventSlideComplete
	if wasCached {
		event = EventSlideCached
	}
	r.notifyProgress(ProgressEvent{
		EventType:   event,
		SlideID:     analysis.SlideID,
		SlideNum:    slideNum,
		TotalSlides: total,
		Status:      analysis.Status,
		Layout:      analysis.EffectiveLayout(),
		Confidence:  analysis.Recommendation.Primary.Confidence,
		DurationMs:  analysis.DurationMs,
	})
}

func (r *DeckRunner) runSlide(slide *models.Slide) (models.SlideAnalysis, bool) {
	if r.cache != nil {
		key, err := cache.Key(slide, r.engine.Registry().Fingerprint(), engine.ScoringVersion)
		if err == nil {
			if cached, found := r.cache.Get(key); found {
				return *cached, true
			}
			analysis := r.analyzeSlide(slide)
			if err := r.cache.Put(key, &analysis); err != nil {
				r.logger.Warn("cache write failed", "slide", slide.ID, "error", err)
			}
			return analysis, false
		}
	}

	return r.analyzeSlide(slide), false
}

func (r *DeckRunner) analyzeSlide(slide *models.Slide) models.SlideAnalysis {
	start := time.Now()

	utils.SlideToSlog(*slide)

	opts, err := slide.DecodeOptions()
	if err != nil {
		r.logger.Warn("ignoring invalid slide options", "slide", slide.ID, "error", err)
		opts = models.SlideOptions{}
	}

	sig := signals.Extract(slide.Content)
	rec := r.engine.RecommendSignals(sig)
	vis := visualization.Detect(slide.Content)

	analysis := models.SlideAnalysis{
		SlideID:        slide.ID,
		Title:          slide.Content.Title,
		Signals:        sig,
		Recommendation: rec,
		Visualization:  vis,
	}

	if opts.PreferredLayout != "" {
		if models.KnownLayout(opts.PreferredLayout) {
			analysis.PinnedLayout = opts.PreferredLayout
		} else {
			r.logger.Warn("ignoring unknown preferred layout",
				"slide", slide.ID, "layout", opts.PreferredLayout)
		}
	}

	gate := r.minConfidence
	if opts.MinConfidence > 0 {
		gate = opts.MinConfidence
	}

	analysis.Status = r.statusFor(sig, rec, analysis.PinnedLayout, gate)

	// A locked layout is the author's final word; do not nag about the
	// engine's confidence in it.
	if opts.LockLayout && analysis.Status == models.StatusLowConfidence {
		analysis.Status = models.StatusOK
	}

	analysis.DurationMs = time.Since(start).Milliseconds()
	return analysis
}

// statusFor gates on the confidence behind the layout that will actually be
// used. An unpinned slide is judged by the primary (always the top-ranked
// score); a pinned slide is judged by how strongly the rules support the
// author's pick, which is where the gate does real work.
func (r *DeckRunner) statusFor(sig models.ContentSignals, rec models.Recommendation, pinned string, gate float64) models.AnalysisStatus {
	if rec.IsFallback() {
		return models.StatusFallback
	}

	confidence := rec.Primary.Confidence
	if pinned != "" {
		confidence = 0
		if score, ok := r.engine.Evaluate(sig)[pinned]; ok {
			confidence = score.Confidence
		}
	}

	if confidence < gate {
		return models.StatusLowConfidence
	}
	return models.StatusOK
}

func (r *DeckRunner) buildOutcome(deck *models.Deck, analyses []models.SlideAnalysis, startTime time.Time) *models.DeckOutcome {
	confidences := make([]float64, 0, len(analyses))
	layouts := make([]string, 0, len(analyses))
	visTypes := make([]string, 0, len(analyses))
	var optTypes []string

	flagged, fallbacks, pinned := 0, 0, 0
	for _, a := range analyses {
		confidences = append(confidences, a.Recommendation.Primary.Confidence)
		layouts = append(layouts, a.EffectiveLayout())
		visTypes = append(visTypes, string(a.Visualization.Type))
		for _, opt := range a.Recommendation.Optimizations {
			optTypes = append(optTypes, opt.Type)
		}

		if a.Status != models.StatusOK {
			flagged++
		}
		if a.Status == models.StatusFallback {
			fallbacks++
		}
		if a.PinnedLayout != "" {
			pinned++
		}
	}

	summary := metrics.Summarize(confidences)

	digest := models.DeckDigest{
		SlideCount:          len(analyses),
		Flagged:             flagged,
		Fallbacks:           fallbacks,
		Pinned:              pinned,
		AvgConfidence:       summary.Mean,
		MinConfidence:       summary.Min,
		MaxConfidence:       summary.Max,
		StdDevConfidence:    summary.StdDev,
		LayoutCounts:        metrics.Tally(layouts),
		VisualizationCounts: metrics.Tally(visTypes),
		OptimizationCounts:  metrics.Tally(optTypes),
		DurationMs:          time.Since(startTime).Milliseconds(),
	}

	return &models.DeckOutcome{
		DeckName:  deck.Name,
		Timestamp: startTime,
		Setup: models.AnalysisSetup{
			Workers:            r.workers,
			Parallel:           r.parallel,
			MinConfidence:      r.minConfidence,
			RulesetFingerprint: r.engine.Registry().Fingerprint(),
			EngineVersion:      engine.ScoringVersion,
		},
		Digest: digest,
		Slides: analyses,
	}
}
