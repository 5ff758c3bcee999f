package render

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/imaging"
	"github.com/salscrudato/deckard/internal/models"
)

func TestFilename(t *testing.T) {
	require.Equal(t, "q3-review.plan.json", Filename("Q3 Review"))
	require.Equal(t, "unnamed.plan.json", Filename("!!!"))
}

func testDeckAndOutcome() (*models.Deck, *models.DeckOutcome) {
	deck := &models.Deck{
		Name: "Q3 Review",
		Slides: []models.Slide{
			{ID: "cover", Content: models.SlideContent{
				Title:  "Q3 Review",
				Images: []models.ImageRef{{URL: "https://example.com/team.png", Alt: "The team"}},
			}},
			{ID: "summary", Content: models.SlideContent{
				Title:   "Summary",
				Bullets: []string{"Revenue up", "Churn down"},
			}},
			{ID: "numbers", Content: models.SlideContent{Title: "Numbers"}},
		},
	}

	outcome := &models.DeckOutcome{
		DeckName:  "Q3 Review",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Slides: []models.SlideAnalysis{
			{
				Index:   0,
				SlideID: "cover",
				Recommendation: models.Recommendation{
					Primary: models.LayoutScore{LayoutID: models.LayoutImageRight, Confidence: 1.0},
					Optimizations: []models.Optimization{
						{Type: models.OptimizationAccessibility, Description: "contrast", Impact: models.ImpactMedium},
					},
				},
			},
			{
				Index:   1,
				SlideID: "summary",
				Recommendation: models.Recommendation{
					Primary: models.LayoutScore{LayoutID: models.LayoutTitleBullets, Confidence: 0.9},
				},
			},
			{
				Index:        2,
				SlideID:      "numbers",
				PinnedLayout: models.LayoutChart,
				Recommendation: models.Recommendation{
					Primary: models.LayoutScore{LayoutID: models.LayoutTitle, Confidence: 0.6},
				},
			},
		},
	}
	return deck, outcome
}

func TestPlanWriter_Render(t *testing.T) {
	deck, outcome := testDeckAndOutcome()
	dir := filepath.Join(t.TempDir(), "plans")
	writer := NewPlanWriter(dir, WithFitter(imaging.PassThrough{}))

	require.NoError(t, writer.Render(context.Background(), deck, outcome))

	data, err := os.ReadFile(filepath.Join(dir, "q3-review.plan.json"))
	require.NoError(t, err)

	var plan Plan
	require.NoError(t, json.Unmarshal(data, &plan))

	require.Equal(t, "Q3 Review", plan.Deck)
	require.Equal(t, outcome.Timestamp, plan.Generated)
	require.Len(t, plan.Slides, 3)

	cover := plan.Slides[0]
	require.Equal(t, models.LayoutImageRight, cover.Layout)
	require.NotNil(t, cover.ImageRegion)
	if cover.ImageRegion.Ratio != 0.75 {
		t.Errorf("cover ratio = %v, want 0.75", cover.ImageRegion.Ratio)
	}
	require.Equal(t, "https://example.com/team.png", cover.ImageRegion.Source)
	require.Equal(t, imaging.StrategyCrop, cover.ImageRegion.Strategy)
	require.Len(t, cover.Optimizations, 1)

	summary := plan.Slides[1]
	require.Equal(t, models.LayoutTitleBullets, summary.Layout)
	require.Nil(t, summary.ImageRegion, "text layout should not reserve an image region")

	// The pinned layout wins even when the engine preferred another.
	numbers := plan.Slides[2]
	require.Equal(t, models.LayoutChart, numbers.Layout)
	require.NotNil(t, numbers.ImageRegion)
	require.Empty(t, numbers.ImageRegion.Source, "no image on the slide, ratio only")
}

func TestPlanWriter_RenderWithoutFitter(t *testing.T) {
	deck, outcome := testDeckAndOutcome()
	dir := t.TempDir()

	require.NoError(t, NewPlanWriter(dir).Render(context.Background(), deck, outcome))

	data, err := os.ReadFile(filepath.Join(dir, "q3-review.plan.json"))
	require.NoError(t, err)

	var plan Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	require.NotNil(t, plan.Slides[0].ImageRegion)
	require.Empty(t, plan.Slides[0].ImageRegion.Strategy)
}

type failingFitter struct{}

func (failingFitter) Convert(context.Context, imaging.Request) (imaging.Result, error) {
	return imaging.Result{}, errors.New("decoder offline")
}

func TestPlanWriter_FitterErrorSurfaces(t *testing.T) {
	deck, outcome := testDeckAndOutcome()
	writer := NewPlanWriter(t.TempDir(), WithFitter(failingFitter{}))

	err := writer.Render(context.Background(), deck, outcome)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fit image for slide cover")
}
