package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/render"
)

const okDeckYAML = `name: quarterly-review
slides:
  - id: intro
    content:
      title: "Q3 Review"
      subtitle: "Engineering all-hands"
  - id: highlights
    content:
      title: "Highlights"
      bullets:
        - "Shipped the new ingestion pipeline"
        - "Cut p99 latency in half"
        - "Two new hires started"
  - id: revenue
    content:
      title: "Revenue"
      chart:
        title: "Revenue by quarter"
        categories: ["Q1", "Q2", "Q3"]
        series:
          - name: "Revenue"
            data: [110, 125, 142]
`

const flaggedDeckYAML = `name: sparse-deck
slides:
  - id: blank
`

func writeDeckFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutcomeFile(t *testing.T, path string) *models.DeckOutcome {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var outcome models.DeckOutcome
	require.NoError(t, json.Unmarshal(data, &outcome))
	return &outcome
}

func TestAnalyzeCommand_JSONReport(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "review.deck.yaml", okDeckYAML)
	outPath := filepath.Join(tmp, "out.json")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "json", "-o", outPath})

	require.NoError(t, cmd.Execute())

	outcome := readOutcomeFile(t, outPath)
	assert.Equal(t, "quarterly-review", outcome.DeckName)
	assert.Equal(t, 3, outcome.Digest.SlideCount)
	assert.Equal(t, 0, outcome.Digest.Flagged)

	require.Len(t, outcome.Slides, 3)
	assert.Equal(t, "title", outcome.Slides[0].Recommendation.Primary.LayoutID)
	assert.Equal(t, "title-bullets", outcome.Slides[1].Recommendation.Primary.LayoutID)
	assert.Equal(t, "chart", outcome.Slides[2].Recommendation.Primary.LayoutID)
	for _, s := range outcome.Slides {
		assert.Equal(t, models.StatusOK, s.Status)
	}
}

func TestAnalyzeCommand_FlaggedDeckReturnsError(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "sparse.deck.yaml", flaggedDeckYAML)
	outPath := filepath.Join(tmp, "out.json")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "json", "-o", outPath})

	err := cmd.Execute()
	require.Error(t, err)

	var failureErr *AnalysisFailureError
	require.ErrorAs(t, err, &failureErr)
	assert.Contains(t, failureErr.Message, "1 flagged slide(s)")

	outcome := readOutcomeFile(t, outPath)
	assert.Equal(t, 1, outcome.Digest.Flagged)
	assert.Equal(t, 1, outcome.Digest.Fallbacks)
	assert.Equal(t, models.StatusFallback, outcome.Slides[0].Status)
	assert.Equal(t, models.FallbackLayout, outcome.Slides[0].Recommendation.Primary.LayoutID)
}

func TestAnalyzeCommand_StoreWritesOutcome(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "review.deck.yaml", okDeckYAML)
	resultsDir := filepath.Join(tmp, "results")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "json", "-o", filepath.Join(tmp, "out.json"),
		"--store", "--results-dir", resultsDir})

	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(resultsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "quarterly-review-"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))

	outcome := readOutcomeFile(t, filepath.Join(resultsDir, entries[0].Name()))
	assert.Equal(t, "quarterly-review", outcome.DeckName)
}

func TestAnalyzeCommand_MarkdownDeck(t *testing.T) {
	tmp := t.TempDir()
	md := "# Opening\n\n---\n\n# Numbers\n\n- Revenue up 12%\n- Churn down\n"
	deckPath := writeDeckFile(t, tmp, "notes.md", md)
	outPath := filepath.Join(tmp, "out.json")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "json", "-o", outPath})

	require.NoError(t, cmd.Execute())

	outcome := readOutcomeFile(t, outPath)
	assert.Equal(t, "notes", outcome.DeckName)
	require.Equal(t, 2, outcome.Digest.SlideCount)
	assert.Equal(t, "Opening", outcome.Slides[0].Title)
	assert.Equal(t, "title-bullets", outcome.Slides[1].Recommendation.Primary.LayoutID)
}

func TestAnalyzeCommand_AllDiscoversDecks(t *testing.T) {
	tmp := t.TempDir()
	decksDir := filepath.Join(tmp, "decks")
	require.NoError(t, os.MkdirAll(decksDir, 0o755))
	writeDeckFile(t, decksDir, "alpha.deck.yaml", okDeckYAML)
	writeDeckFile(t, decksDir, "beta.deck.yaml", strings.Replace(okDeckYAML, "quarterly-review", "beta-review", 1))
	resultsDir := filepath.Join(tmp, "results")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{"--all", "--decks-dir", decksDir, "--format", "json",
		"-o", filepath.Join(tmp, "out.json"), "--store", "--results-dir", resultsDir})

	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(resultsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAnalyzeCommand_NoInputs(t *testing.T) {
	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deck files given")
}

func TestAnalyzeCommand_JUnitReport(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "review.deck.yaml", okDeckYAML)
	outPath := filepath.Join(tmp, "junit.xml")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "junit", "-o", outPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<testsuite")
	assert.Contains(t, string(data), "quarterly-review")
}

func TestAnalyzeCommand_PlanDir(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "review.deck.yaml", okDeckYAML)
	planDir := filepath.Join(tmp, "plans")

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "json", "-o", filepath.Join(tmp, "out.json"),
		"--plan-dir", planDir})

	require.NoError(t, cmd.Execute())

	planPath := filepath.Join(planDir, render.Filename("quarterly-review"))
	require.FileExists(t, planPath)

	data, err := os.ReadFile(planPath)
	require.NoError(t, err)
	var plan map[string]any
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, "quarterly-review", plan["deck"])
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	tmp := t.TempDir()
	deckPath := writeDeckFile(t, tmp, "review.deck.yaml", okDeckYAML)

	cmd := newAnalyzeCommand()
	cmd.SetArgs([]string{deckPath, "--format", "csv"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
