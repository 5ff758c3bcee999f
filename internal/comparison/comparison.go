// Package comparison diffs deck analysis outcomes across runs. The usual
// case is two analyses of the same deck, one before and one after a rule
// weight override or a content edit, to see what actually changed.
package comparison

import (
	"fmt"

	"github.com/salscrudato/deckard/internal/models"
)

// SlideDelta holds one slide's results across the compared outcomes.
// Slices are indexed by outcome position. A slide absent from an outcome
// carries "n/a" in Layouts and Statuses and 0 in Confidences; deltas are
// computed only when the slide is present in both endpoint outcomes.
type SlideDelta struct {
	SlideID         string    `json:"slide_id"`
	Title           string    `json:"title,omitempty"`
	Layouts         []string  `json:"layouts"`
	Confidences     []float64 `json:"confidences"`
	Statuses        []string  `json:"statuses"`
	LayoutChanged   bool      `json:"layout_changed"`
	ConfidenceDelta float64   `json:"confidence_delta"`
}

// Report is the full comparison across two or more outcomes. Deltas read
// last minus first, so callers should pass outcomes oldest first.
type Report struct {
	Labels             []string     `json:"labels"`
	Decks              []string     `json:"decks"`
	Fingerprints       []string     `json:"fingerprints"`
	SlideCounts        []int        `json:"slide_counts"`
	FlaggedCounts      []int        `json:"flagged_counts"`
	AvgConfidences     []float64    `json:"avg_confidences"`
	DurationsMs        []int64      `json:"durations_ms"`
	AvgConfidenceDelta float64      `json:"avg_confidence_delta"`
	FlaggedDelta       int          `json:"flagged_delta"`
	LayoutChanges      int          `json:"layout_changes"`
	RulesetChanged     bool         `json:"ruleset_changed"`
	Slides             []SlideDelta `json:"slides"`
}

const absent = "n/a"

// Compare builds a report over two or more outcomes. labels name the
// outcomes in the output, usually their source file paths.
func Compare(labels []string, outcomes []*models.DeckOutcome) (*Report, error) {
	if len(outcomes) < 2 {
		return nil, fmt.Errorf("comparison needs at least two outcomes, got %d", len(outcomes))
	}
	if len(labels) != len(outcomes) {
		return nil, fmt.Errorf("got %d labels for %d outcomes", len(labels), len(outcomes))
	}

	r := &Report{Labels: labels}
	for _, o := range outcomes {
		r.Decks = append(r.Decks, o.DeckName)
		r.Fingerprints = append(r.Fingerprints, o.Setup.RulesetFingerprint)
		r.SlideCounts = append(r.SlideCounts, o.Digest.SlideCount)
		r.FlaggedCounts = append(r.FlaggedCounts, o.Digest.Flagged)
		r.AvgConfidences = append(r.AvgConfidences, o.Digest.AvgConfidence)
		r.DurationsMs = append(r.DurationsMs, o.Digest.DurationMs)
	}

	n := len(outcomes)
	r.AvgConfidenceDelta = r.AvgConfidences[n-1] - r.AvgConfidences[0]
	r.FlaggedDelta = r.FlaggedCounts[n-1] - r.FlaggedCounts[0]
	r.RulesetChanged = r.Fingerprints[n-1] != r.Fingerprints[0]

	for _, key := range slideKeys(outcomes) {
		sd := SlideDelta{SlideID: key}
		for _, o := range outcomes {
			a, ok := findSlide(o, key)
			if !ok {
				sd.Layouts = append(sd.Layouts, absent)
				sd.Confidences = append(sd.Confidences, 0)
				sd.Statuses = append(sd.Statuses, absent)
				continue
			}
			if sd.Title == "" {
				sd.Title = a.Title
			}
			sd.Layouts = append(sd.Layouts, a.EffectiveLayout())
			sd.Confidences = append(sd.Confidences, a.Recommendation.Primary.Confidence)
			sd.Statuses = append(sd.Statuses, string(a.Status))
		}

		if sd.Statuses[0] != absent && sd.Statuses[n-1] != absent {
			sd.LayoutChanged = sd.Layouts[0] != sd.Layouts[n-1]
			sd.ConfidenceDelta = sd.Confidences[n-1] - sd.Confidences[0]
		}
		if sd.LayoutChanged {
			r.LayoutChanges++
		}
		r.Slides = append(r.Slides, sd)
	}

	return r, nil
}

// slideKeys returns every slide key across the outcomes in first-seen
// order, so the report follows the deck order of the oldest outcome and
// appends slides that only newer outcomes have.
func slideKeys(outcomes []*models.DeckOutcome) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, o := range outcomes {
		for i := range o.Slides {
			k := slideKey(&o.Slides[i])
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func slideKey(a *models.SlideAnalysis) string {
	if a.SlideID != "" {
		return a.SlideID
	}
	return fmt.Sprintf("#%d", a.Index+1)
}

func findSlide(o *models.DeckOutcome, key string) (*models.SlideAnalysis, bool) {
	for i := range o.Slides {
		if slideKey(&o.Slides[i]) == key {
			return &o.Slides[i], true
		}
	}
	return nil, false
}
