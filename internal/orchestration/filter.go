package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/salscrudato/deckard/internal/models"
)

// FilterSlides returns the subset of slides whose ID or title matches at
// least one of the given glob patterns. An empty patterns slice returns
// all slides unchanged.
func FilterSlides(slides []*models.Slide, patterns []string) ([]*models.Slide, error) {
	if len(patterns) == 0 {
		return slides, nil
	}

	var matched []*models.Slide
	for _, slide := range slides {
		ok, err := matchesAny(slide, patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, slide)
		}
	}
	return matched, nil
}

// matchesAny reports whether a slide's ID or title matches any pattern.
func matchesAny(slide *models.Slide, patterns []string) (bool, error) {
	for _, p := range patterns {
		idMatch, err := filepath.Match(p, slide.ID)
		if err != nil {
			return false, fmt.Errorf("invalid slide filter pattern %q: %w", p, err)
		}
		if idMatch {
			return true, nil
		}
		titleMatch, err := filepath.Match(p, slide.Content.Title)
		if err != nil {
			return false, fmt.Errorf("invalid slide filter pattern %q: %w", p, err)
		}
		if titleMatch {
			return true, nil
		}
	}
	return false, nil
}
