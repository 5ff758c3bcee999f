package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salscrudato/deckard/internal/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "sub-second in ms", d: 340 * time.Millisecond, want: "340ms"},
		{name: "zero", d: 0, want: "0ms"},
		{name: "seconds", d: 2500 * time.Millisecond, want: "2.5s"},
		{name: "minutes", d: 90 * time.Second, want: "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "✓", statusGlyph(models.StatusOK))
	assert.Equal(t, "⚠", statusGlyph(models.StatusLowConfidence))
	assert.Equal(t, "✗", statusGlyph(models.StatusFallback))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5), "wider than target stays unpadded")
	assert.Equal(t, "", padRight("", 0))
}

func TestSlideLabel(t *testing.T) {
	assert.Equal(t, "revenue", slideLabel(models.SlideAnalysis{SlideID: "revenue", Title: "Revenue"}))
	assert.Equal(t, "Revenue", slideLabel(models.SlideAnalysis{Title: "Revenue"}))
	assert.Equal(t, "slide 3", slideLabel(models.SlideAnalysis{Index: 2}))
}

func TestFormatTally(t *testing.T) {
	counts := map[string]int{
		"title-bullets": 2,
		"chart":         3,
		"quote":         2,
	}

	// Largest first, ties alphabetical.
	assert.Equal(t, "chart=3, quote=2, title-bullets=2", formatTally(counts))
	assert.Equal(t, "", formatTally(nil))
}
