// Package imaging defines the handoff between layout decisions and image
// processing. Layouts only know the aspect ratio of the region they
// reserve; everything pixel-shaped lives behind the Fitter interface so
// the decision core stays free of image codecs.
package imaging

import (
	"context"

	"github.com/salscrudato/deckard/internal/models"
)

// Strategy names how an image should be adjusted to a target region.
type Strategy string

const (
	// StrategyCrop trims the image to the target ratio.
	StrategyCrop Strategy = "crop"
	// StrategyExtend pads the image out to the target ratio.
	StrategyExtend Strategy = "extend"
	// StrategyFit letterboxes the whole image inside the region.
	StrategyFit Strategy = "fit"
	// StrategyFill covers the region, clipping overflow.
	StrategyFill Strategy = "fill"
	// StrategySmart lets the fitter choose based on image content.
	StrategySmart Strategy = "smart"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyCrop, StrategyExtend, StrategyFit, StrategyFill, StrategySmart:
		return true
	}
	return false
}

// Rect is a region within an image, in source pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Request asks a fitter to prepare one image for a layout region.
type Request struct {
	Image       models.ImageRef
	TargetRatio float64
	Strategy    Strategy
}

// Result is the fitter's answer. CropArea is set only when the applied
// strategy discarded part of the source image.
type Result struct {
	Image           models.ImageRef
	AppliedStrategy Strategy
	CropArea        *Rect
}

// Fitter prepares images for layout regions.
type Fitter interface {
	Convert(ctx context.Context, req Request) (Result, error)
}

// PassThrough is a Fitter that performs no image work. It records the
// requested strategy (fill when unspecified, crop for smart requests)
// and returns the source image untouched. Useful for plan generation
// and tests where only the decision matters.
type PassThrough struct{}

func (PassThrough) Convert(_ context.Context, req Request) (Result, error) {
	applied := req.Strategy
	switch applied {
	case "":
		applied = StrategyFill
	case StrategySmart:
		applied = StrategyCrop
	}
	return Result{Image: req.Image, AppliedStrategy: applied}, nil
}
