package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/cache"
	"github.com/salscrudato/deckard/internal/engine"
	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/rules"
)

func newRunner(t *testing.T, opts ...RunnerOption) *DeckRunner {
	t.Helper()
	registry, err := rules.NewRegistry()
	require.NoError(t, err)
	return NewDeckRunner(engine.New(registry), opts...)
}

// testDeck exercises the three statuses: two ordinary slides, one empty
// slide on the fallback path, and one slide pinned to a layout the rules
// never proposed.
func testDeck() *models.Deck {
	return &models.Deck{
		Name: "Q3 Review",
		Slides: []models.Slide{
			{
				ID: "intro",
				Content: models.SlideContent{
					Title:   "Agenda",
					Bullets: []string{"Revenue recap", "Product launches", "Hiring update", "Open questions"},
				},
			},
			{
				ID: "revenue",
				Content: models.SlideContent{
					Title: "Revenue",
					Chart: &models.Chart{
						Title:      "Quarterly Revenue",
						Categories: []string{"Q1", "Q2"},
						Series:     []models.Series{{Name: "Actual", Data: []any{4.1, 5.2}}},
					},
				},
			},
			{ID: "blank"},
			{
				ID: "vision",
				Content: models.SlideContent{
					Title:   "Vision",
					Bullets: []string{"Ship faster", "Talk to customers", "Keep quality high", "Grow the team"},
				},
				Options: map[string]any{"preferred_layout": "timeline"},
			},
		},
	}
}

func TestAnalyzeDeck_Sequential(t *testing.T) {
	runner := newRunner(t)

	outcome, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	require.Equal(t, "Q3 Review", outcome.DeckName)
	require.Len(t, outcome.Slides, 4)

	intro := outcome.Slides[0]
	require.Equal(t, "intro", intro.SlideID)
	require.Equal(t, 0, intro.Index)
	require.Equal(t, models.StatusOK, intro.Status)
	require.Equal(t, models.LayoutTitleBullets, intro.EffectiveLayout())
	require.Equal(t, 1.0, intro.Recommendation.Primary.Confidence)

	revenue := outcome.Slides[1]
	require.Equal(t, models.StatusOK, revenue.Status)
	require.Equal(t, models.LayoutChart, revenue.EffectiveLayout())
	require.Equal(t, models.VisualizationChart, revenue.Visualization.Type)

	blank := outcome.Slides[2]
	require.Equal(t, models.StatusFallback, blank.Status)
	require.True(t, blank.Recommendation.IsFallback())
	require.Equal(t, models.FallbackLayout, blank.EffectiveLayout())

	vision := outcome.Slides[3]
	require.Equal(t, models.StatusLowConfidence, vision.Status)
	require.Equal(t, models.LayoutTimeline, vision.PinnedLayout)
	require.Equal(t, models.LayoutTimeline, vision.EffectiveLayout())

	require.False(t, outcome.Setup.Parallel)
	require.Equal(t, DefaultMinConfidence, outcome.Setup.MinConfidence)
	require.Equal(t, engine.ScoringVersion, outcome.Setup.EngineVersion)
	require.Equal(t, runner.engine.Registry().Fingerprint(), outcome.Setup.RulesetFingerprint)
}

func TestAnalyzeDeck_Digest(t *testing.T) {
	runner := newRunner(t)

	outcome, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	digest := outcome.Digest
	require.Equal(t, 4, digest.SlideCount)
	require.Equal(t, 2, digest.Flagged)
	require.Equal(t, 1, digest.Fallbacks)
	require.Equal(t, 1, digest.Pinned)

	require.InDelta(t, 0.875, digest.AvgConfidence, 1e-9)
	require.Equal(t, 0.5, digest.MinConfidence)
	require.Equal(t, 1.0, digest.MaxConfidence)
	require.InDelta(t, 0.2165063, digest.StdDevConfidence, 1e-6)

	require.Equal(t, map[string]int{
		models.LayoutTitleBullets: 2,
		models.LayoutChart:        1,
		models.LayoutTimeline:     1,
	}, digest.LayoutCounts)
	require.Equal(t, map[string]int{
		string(models.VisualizationText):  3,
		string(models.VisualizationChart): 1,
	}, digest.VisualizationCounts)
	require.Equal(t, map[string]int{
		models.OptimizationAccessibility: 4,
	}, digest.OptimizationCounts)
}

func stripTimings(outcome *models.DeckOutcome) {
	outcome.Timestamp = time.Time{}
	outcome.Digest.DurationMs = 0
	for i := range outcome.Slides {
		outcome.Slides[i].DurationMs = 0
	}
}

func TestAnalyzeDeck_ParallelMatchesSequential(t *testing.T) {
	sequential, err := newRunner(t).AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	parallel, err := newRunner(t, WithParallel(3)).AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	require.True(t, parallel.Setup.Parallel)
	require.Equal(t, 3, parallel.Setup.Workers)

	stripTimings(sequential)
	stripTimings(parallel)
	require.Equal(t, sequential.Slides, parallel.Slides)
	require.Equal(t, sequential.Digest, parallel.Digest)
}

func TestAnalyzeDeck_CacheHit(t *testing.T) {
	dir := t.TempDir()
	runner := newRunner(t, WithCache(cache.New(dir)))

	first, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)
	for _, slide := range first.Slides {
		require.False(t, slide.CacheHit, "slide %s", slide.SlideID)
	}

	second, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)
	for _, slide := range second.Slides {
		require.True(t, slide.CacheHit, "slide %s", slide.SlideID)
	}

	stripTimings(first)
	stripTimings(second)
	for i := range second.Slides {
		second.Slides[i].CacheHit = false
	}
	require.Equal(t, first.Slides, second.Slides)
}

func TestAnalyzeDeck_CacheSurvivesRunnerRestart(t *testing.T) {
	dir := t.TempDir()

	_, err := newRunner(t, WithCache(cache.New(dir))).AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	outcome, err := newRunner(t, WithCache(cache.New(dir))).AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)
	for _, slide := range outcome.Slides {
		require.True(t, slide.CacheHit, "slide %s", slide.SlideID)
	}
}

func TestAnalyzeDeck_SlideFilters(t *testing.T) {
	t.Run("by id glob", func(t *testing.T) {
		runner := newRunner(t, WithSlideFilters("rev*"))
		outcome, err := runner.AnalyzeDeck(context.Background(), testDeck())
		require.NoError(t, err)
		require.Len(t, outcome.Slides, 1)
		require.Equal(t, "revenue", outcome.Slides[0].SlideID)
		require.Equal(t, 1, outcome.Digest.SlideCount)
	})

	t.Run("by title", func(t *testing.T) {
		runner := newRunner(t, WithSlideFilters("Agenda"))
		outcome, err := runner.AnalyzeDeck(context.Background(), testDeck())
		require.NoError(t, err)
		require.Len(t, outcome.Slides, 1)
		require.Equal(t, "intro", outcome.Slides[0].SlideID)
	})

	t.Run("nothing selected", func(t *testing.T) {
		runner := newRunner(t, WithSlideFilters("zzz*"))
		_, err := runner.AnalyzeDeck(context.Background(), testDeck())
		require.ErrorContains(t, err, "no slides selected")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		runner := newRunner(t, WithSlideFilters("["))
		_, err := runner.AnalyzeDeck(context.Background(), testDeck())
		require.ErrorContains(t, err, "invalid slide filter pattern")
	})
}

func TestAnalyzeDeck_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t).AnalyzeDeck(ctx, testDeck())
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeDeck_ProgressEvents(t *testing.T) {
	runner := newRunner(t)

	var events []ProgressEvent
	runner.OnProgress(func(event ProgressEvent) {
		events = append(events, event)
	})

	_, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	require.Len(t, events, 10)
	require.Equal(t, EventDeckStart, events[0].EventType)
	require.Equal(t, 4, events[0].TotalSlides)
	require.Equal(t, EventDeckComplete, events[len(events)-1].EventType)

	require.Equal(t, EventSlideStart, events[1].EventType)
	require.Equal(t, "intro", events[1].SlideID)
	require.Equal(t, 1, events[1].SlideNum)

	require.Equal(t, EventSlideComplete, events[2].EventType)
	require.Equal(t, models.LayoutTitleBullets, events[2].Layout)
	require.Equal(t, models.StatusOK, events[2].Status)
}

func TestAnalyzeDeck_CachedProgressEvents(t *testing.T) {
	dir := t.TempDir()
	runner := newRunner(t, WithCache(cache.New(dir)))

	_, err := runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)

	var cached int
	runner.OnProgress(func(event ProgressEvent) {
		if event.EventType == EventSlideCached {
			cached++
		}
	})
	_, err = runner.AnalyzeDeck(context.Background(), testDeck())
	require.NoError(t, err)
	require.Equal(t, 4, cached)
}

func TestAnalyzeSlide_Options(t *testing.T) {
	runner := newRunner(t)

	bullets := models.SlideContent{
		Title:   "Agenda",
		Bullets: []string{"Revenue recap", "Product launches", "Hiring update", "Open questions"},
	}

	t.Run("pin to a supported layout", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s1",
			Content: bullets,
			Options: map[string]any{"preferred_layout": models.LayoutTwoColumn},
		})
		require.Equal(t, models.LayoutTwoColumn, analysis.PinnedLayout)
		require.Equal(t, models.LayoutTwoColumn, analysis.EffectiveLayout())
		require.Equal(t, models.StatusOK, analysis.Status)
	})

	t.Run("pin to a weakly supported layout passes the default gate", func(t *testing.T) {
		// The rules back "title" here at well under full confidence, but
		// still above 0.4.
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s2",
			Content: bullets,
			Options: map[string]any{"preferred_layout": models.LayoutTitle},
		})
		require.Equal(t, models.StatusOK, analysis.Status)
	})

	t.Run("per-slide gate tightens the pin check", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s3",
			Content: bullets,
			Options: map[string]any{"preferred_layout": models.LayoutTitle, "min_confidence": 0.7},
		})
		require.Equal(t, models.StatusLowConfidence, analysis.Status)
	})

	t.Run("pin to an unsupported layout is flagged", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s4",
			Content: bullets,
			Options: map[string]any{"preferred_layout": models.LayoutTimeline},
		})
		require.Equal(t, models.LayoutTimeline, analysis.PinnedLayout)
		require.Equal(t, models.StatusLowConfidence, analysis.Status)
	})

	t.Run("lock suppresses the low-confidence flag", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s5",
			Content: bullets,
			Options: map[string]any{"preferred_layout": models.LayoutTimeline, "lock_layout": true},
		})
		require.Equal(t, models.LayoutTimeline, analysis.PinnedLayout)
		require.Equal(t, models.StatusOK, analysis.Status)
	})

	t.Run("unknown layout is ignored", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s6",
			Content: bullets,
			Options: map[string]any{"preferred_layout": "sidebar"},
		})
		require.Empty(t, analysis.PinnedLayout)
		require.Equal(t, models.LayoutTitleBullets, analysis.EffectiveLayout())
	})

	t.Run("undecodable options are ignored", func(t *testing.T) {
		analysis := runner.analyzeSlide(&models.Slide{
			ID:      "s7",
			Content: bullets,
			Options: map[string]any{"min_confidence": "very high"},
		})
		require.Empty(t, analysis.PinnedLayout)
		require.Equal(t, models.StatusOK, analysis.Status)
	})
}

func TestAnalyzeDeck_RunnerGate(t *testing.T) {
	deck := &models.Deck{
		Name: "Pinned",
		Slides: []models.Slide{{
			ID: "s1",
			Content: models.SlideContent{
				Title:   "Agenda",
				Bullets: []string{"Revenue recap", "Product launches", "Hiring update", "Open questions"},
			},
			Options: map[string]any{"preferred_layout": models.LayoutTitle},
		}},
	}

	outcome, err := newRunner(t).AnalyzeDeck(context.Background(), deck)
	require.NoError(t, err)
	require.Equal(t, models.StatusOK, outcome.Slides[0].Status)

	strict, err := newRunner(t, WithMinConfidence(0.7)).AnalyzeDeck(context.Background(), deck)
	require.NoError(t, err)
	require.Equal(t, models.StatusLowConfidence, strict.Slides[0].Status)
	require.Equal(t, 0.7, strict.Setup.MinConfidence)
}
