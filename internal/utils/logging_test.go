package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/models"
)

func TestSlideToSlogDebugDisabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	SlideToSlog(models.Slide{ID: "intro"})
	assert.Equal(t, 0, buf.Len())
}

func TestSlideToSlogDebugEnabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	SlideToSlog(models.Slide{
		ID: "revenue",
		Content: models.SlideContent{
			Title:   "Revenue by Quarter",
			Bullets: []string{"Q1 up", "Q2 flat"},
			Chart: &models.Chart{
				Categories: []string{"Q1", "Q2"},
				Series:     []models.Series{{Name: "Actual", Data: []any{3, 5}}},
			},
		},
	})

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "Slide received", logEntry["msg"])
	assert.Equal(t, "revenue", logEntry["slide"])
	assert.Equal(t, "Revenue by Quarter", logEntry["title"])
	assert.Equal(t, float64(2), logEntry["bullets"])
	assert.Contains(t, logEntry, "chart")
	assert.NotContains(t, logEntry, "table")
	assert.NotContains(t, logEntry, "left")
}

func TestAddIf(t *testing.T) {
	attrs := []any{"existing", "value"}

	result := addIf(attrs, "missing", (*int)(nil))
	assert.Equal(t, attrs, result)

	v := 7
	result = addIf(attrs, "number", &v)
	assert.Equal(t, []any{"existing", "value", "number", 7}, result)
}
