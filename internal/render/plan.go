// Package render turns a completed deck analysis into renderer-facing
// artifacts. The built-in renderer emits a JSON layout plan; binary
// slide formats plug in behind the Renderer interface.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/salscrudato/deckard/internal/imaging"
	"github.com/salscrudato/deckard/internal/models"
)

// Renderer consumes a deck together with its analysis outcome.
type Renderer interface {
	Render(ctx context.Context, deck *models.Deck, outcome *models.DeckOutcome) error
}

// Plan is the document written to <deck>.plan.json.
type Plan struct {
	Deck      string      `json:"deck"`
	Generated time.Time   `json:"generated"`
	Slides    []SlidePlan `json:"slides"`
}

// SlidePlan records the layout decision for one slide.
type SlidePlan struct {
	SlideID       string                `json:"slide_id"`
	Layout        string                `json:"layout"`
	Confidence    float64               `json:"confidence"`
	ImageRegion   *ImagePlan            `json:"image_region,omitempty"`
	Optimizations []models.Optimization `json:"optimizations,omitempty"`
}

// ImagePlan describes the image region a layout reserves and, when a
// fitter was consulted, how the slide's image should fill it.
type ImagePlan struct {
	Ratio    float64          `json:"ratio"`
	Source   string           `json:"source,omitempty"`
	Strategy imaging.Strategy `json:"strategy,omitempty"`
	CropArea *imaging.Rect    `json:"crop_area,omitempty"`
}

// PlanWriter is a Renderer that writes one layout plan per deck.
type PlanWriter struct {
	dir    string
	fitter imaging.Fitter
}

// PlanOption configures a PlanWriter.
type PlanOption func(*PlanWriter)

// WithFitter plans image placement with f for layouts that reserve an
// image region.
func WithFitter(f imaging.Fitter) PlanOption {
	return func(w *PlanWriter) { w.fitter = f }
}

// NewPlanWriter returns a PlanWriter that writes plans into dir.
func NewPlanWriter(dir string, opts ...PlanOption) *PlanWriter {
	w := &PlanWriter{dir: dir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the plan filename for a deck.
func Filename(deckName string) string {
	return sanitizeName(deckName) + ".plan.json"
}

// Render writes the layout plan for outcome into the writer's directory.
func (w *PlanWriter) Render(ctx context.Context, deck *models.Deck, outcome *models.DeckOutcome) error {
	plan, err := w.buildPlan(ctx, deck, outcome)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create plan dir: %w", err)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	path := filepath.Join(w.dir, Filename(outcome.DeckName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	return nil
}

func (w *PlanWriter) buildPlan(ctx context.Context, deck *models.Deck, outcome *models.DeckOutcome) (*Plan, error) {
	slidesByID := make(map[string]*models.Slide, len(deck.Slides))
	for i := range deck.Slides {
		slidesByID[deck.Slides[i].ID] = &deck.Slides[i]
	}

	plan := &Plan{
		Deck:      outcome.DeckName,
		Generated: outcome.Timestamp,
		Slides:    make([]SlidePlan, 0, len(outcome.Slides)),
	}
	for _, analysis := range outcome.Slides {
		entry := SlidePlan{
			SlideID:       analysis.SlideID,
			Layout:        analysis.EffectiveLayout(),
			Confidence:    analysis.Recommendation.Primary.Confidence,
			Optimizations: analysis.Recommendation.Optimizations,
		}
		region, err := w.imagePlan(ctx, slidesByID[analysis.SlideID], entry.Layout)
		if err != nil {
			return nil, err
		}
		entry.ImageRegion = region
		plan.Slides = append(plan.Slides, entry)
	}
	return plan, nil
}

func (w *PlanWriter) imagePlan(ctx context.Context, slide *models.Slide, layoutID string) (*ImagePlan, error) {
	layout, ok := models.LayoutByID(layoutID)
	if !ok || layout.ImageRegionRatio == 0 {
		return nil, nil
	}

	region := &ImagePlan{Ratio: layout.ImageRegionRatio}
	if slide == nil || len(slide.Content.Images) == 0 || w.fitter == nil {
		return region, nil
	}

	result, err := w.fitter.Convert(ctx, imaging.Request{
		Image:       slide.Content.Images[0],
		TargetRatio: layout.ImageRegionRatio,
		Strategy:    imaging.StrategySmart,
	})
	if err != nil {
		return nil, fmt.Errorf("fit image for slide %s: %w", slide.ID, err)
	}

	region.Source = imageSource(result.Image)
	region.Strategy = result.AppliedStrategy
	region.CropArea = result.CropArea
	return region, nil
}

func imageSource(img models.ImageRef) string {
	if img.URL != "" {
		return img.URL
	}
	return img.Path
}
