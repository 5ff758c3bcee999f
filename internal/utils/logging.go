package utils

import (
	"context"
	"log/slog"

	"github.com/salscrudato/deckard/internal/models"
)

// SlideToSlog dumps a slide's content shape at debug level. The enabled
// check up front keeps attribute construction off the normal path.
func SlideToSlog(slide models.Slide) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{
		"slide", slide.ID,
	}

	if slide.Content.Title != "" {
		attrs = append(attrs, "title", slide.Content.Title)
	}
	if n := len(slide.Content.Bullets); n > 0 {
		attrs = append(attrs, "bullets", n)
	}
	if n := len(slide.Content.Timeline); n > 0 {
		attrs = append(attrs, "timeline", n)
	}
	if n := len(slide.Content.Images); n > 0 {
		attrs = append(attrs, "images", n)
	}

	attrs = addIf(attrs, "chart", slide.Content.Chart)
	attrs = addIf(attrs, "table", slide.Content.Table)
	attrs = addIf(attrs, "comparisonTable", slide.Content.ComparisonTable)
	attrs = addIf(attrs, "left", slide.Content.Left)
	attrs = addIf(attrs, "right", slide.Content.Right)

	slog.Debug("Slide received", attrs...)
}

func addIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name)
		attrs = append(attrs, *v)
	}

	return attrs
}
