package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/models"
)

func analyzedSlide(index int, id, layout string, confidence float64, status models.AnalysisStatus) models.SlideAnalysis {
	return models.SlideAnalysis{
		Index:   index,
		SlideID: id,
		Status:  status,
		Recommendation: models.Recommendation{
			Primary: models.LayoutScore{LayoutID: layout, RawScore: confidence, Confidence: confidence},
		},
	}
}

func fixtureOutcome(fingerprint string, flagged int, avg float64, slides ...models.SlideAnalysis) *models.DeckOutcome {
	return &models.DeckOutcome{
		DeckName: "q3-review",
		Setup:    models.AnalysisSetup{RulesetFingerprint: fingerprint},
		Digest: models.DeckDigest{
			SlideCount:    len(slides),
			Flagged:       flagged,
			AvgConfidence: avg,
			DurationMs:    12,
		},
		Slides: slides,
	}
}

func TestCompareDigestDeltas(t *testing.T) {
	before := fixtureOutcome("aaaa1111", 2, 0.75,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "numbers", "title-bullets", 0.5, models.StatusFallback),
	)
	after := fixtureOutcome("bbbb2222", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "numbers", "chart", 1.0, models.StatusOK),
	)

	report, err := Compare([]string{"before.json", "after.json"}, []*models.DeckOutcome{before, after})
	require.NoError(t, err)

	assert.Equal(t, []string{"before.json", "after.json"}, report.Labels)
	assert.Equal(t, []string{"q3-review", "q3-review"}, report.Decks)
	assert.True(t, report.RulesetChanged)
	assert.Equal(t, -2, report.FlaggedDelta)
	assert.InDelta(t, 0.25, report.AvgConfidenceDelta, 1e-9)
	assert.Equal(t, []int{2, 2}, report.SlideCounts)
}

func TestCompareSlideDeltas(t *testing.T) {
	before := fixtureOutcome("aaaa1111", 1, 0.83,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "numbers", "title-bullets", 0.5, models.StatusFallback),
		analyzedSlide(2, "closing", "quote", 1.0, models.StatusOK),
	)
	after := fixtureOutcome("bbbb2222", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "numbers", "chart", 1.0, models.StatusOK),
		analyzedSlide(2, "appendix", "table", 1.0, models.StatusOK),
	)

	report, err := Compare([]string{"a", "b"}, []*models.DeckOutcome{before, after})
	require.NoError(t, err)

	// First-seen order: the older deck's slides, then slides new in the
	// later run.
	require.Len(t, report.Slides, 4)
	assert.Equal(t, "intro", report.Slides[0].SlideID)
	assert.Equal(t, "numbers", report.Slides[1].SlideID)
	assert.Equal(t, "closing", report.Slides[2].SlideID)
	assert.Equal(t, "appendix", report.Slides[3].SlideID)

	intro := report.Slides[0]
	assert.False(t, intro.LayoutChanged)
	assert.InDelta(t, 0, intro.ConfidenceDelta, 1e-9)

	numbers := report.Slides[1]
	assert.True(t, numbers.LayoutChanged)
	assert.Equal(t, []string{"title-bullets", "chart"}, numbers.Layouts)
	assert.InDelta(t, 0.5, numbers.ConfidenceDelta, 1e-9)
	assert.Equal(t, []string{"fallback", "ok"}, numbers.Statuses)

	closing := report.Slides[2]
	assert.Equal(t, "n/a", closing.Statuses[1])
	assert.Equal(t, "n/a", closing.Layouts[1])
	assert.False(t, closing.LayoutChanged)
	assert.InDelta(t, 0, closing.ConfidenceDelta, 1e-9)

	appendix := report.Slides[3]
	assert.Equal(t, "n/a", appendix.Statuses[0])
	assert.Equal(t, "table", appendix.Layouts[1])

	assert.Equal(t, 1, report.LayoutChanges)
}

func TestComparePinnedLayoutCountsAsChange(t *testing.T) {
	before := fixtureOutcome("cccc3333", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
	)
	pinned := analyzedSlide(0, "intro", "title", 1.0, models.StatusOK)
	pinned.PinnedLayout = "quote"
	after := fixtureOutcome("cccc3333", 0, 1.0, pinned)

	report, err := Compare([]string{"a", "b"}, []*models.DeckOutcome{before, after})
	require.NoError(t, err)

	require.Len(t, report.Slides, 1)
	assert.True(t, report.Slides[0].LayoutChanged)
	assert.Equal(t, []string{"title", "quote"}, report.Slides[0].Layouts)
	assert.False(t, report.RulesetChanged)
}

func TestCompareKeysSlidesWithoutIDsByPosition(t *testing.T) {
	before := fixtureOutcome("dddd4444", 0, 1.0,
		analyzedSlide(0, "", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "", "quote", 1.0, models.StatusOK),
	)
	after := fixtureOutcome("dddd4444", 0, 1.0,
		analyzedSlide(0, "", "title", 1.0, models.StatusOK),
		analyzedSlide(1, "", "chart", 1.0, models.StatusOK),
	)

	report, err := Compare([]string{"a", "b"}, []*models.DeckOutcome{before, after})
	require.NoError(t, err)

	require.Len(t, report.Slides, 2)
	assert.Equal(t, "#1", report.Slides[0].SlideID)
	assert.Equal(t, "#2", report.Slides[1].SlideID)
	assert.True(t, report.Slides[1].LayoutChanged)
}

func TestCompareRequiresTwoOutcomes(t *testing.T) {
	one := fixtureOutcome("eeee5555", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
	)

	_, err := Compare([]string{"a"}, []*models.DeckOutcome{one})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two outcomes")
}

func TestCompareRejectsLabelMismatch(t *testing.T) {
	a := fixtureOutcome("ffff6666", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
	)
	b := fixtureOutcome("ffff6666", 0, 1.0,
		analyzedSlide(0, "intro", "title", 1.0, models.StatusOK),
	)

	_, err := Compare([]string{"only-one"}, []*models.DeckOutcome{a, b})
	require.Error(t, err)
}
