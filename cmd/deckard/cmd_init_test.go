package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salscrudato/deckard/internal/models"
)

func TestInitCommand_CreatesProjectStructure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Project")

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())

	assert.DirExists(t, filepath.Join(dir, "decks"))
	assert.DirExists(t, filepath.Join(dir, "results"))
	assert.FileExists(t, filepath.Join(dir, ".deckard.yaml"))

	// The deck name falls back to the slugified directory name.
	deckPath := filepath.Join(dir, "decks", "my-project.deck.yaml")
	require.FileExists(t, deckPath)

	assert.Contains(t, buf.String(), "Initialized deck project:")
	assert.Contains(t, buf.String(), "Next steps:")
}

func TestInitCommand_StarterDeckLoads(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--name", "q3-review"})

	require.NoError(t, cmd.Execute())

	deck, err := models.LoadDeck(filepath.Join(dir, "decks", "q3-review.deck.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "q3-review", deck.Name)
	assert.NotEmpty(t, deck.Slides)
}

func TestInitCommand_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()

	first := newInitCommand()
	first.SetOut(&bytes.Buffer{})
	first.SetArgs([]string{dir, "--name", "keeper"})
	require.NoError(t, first.Execute())

	second := newInitCommand()
	second.SetOut(&bytes.Buffer{})
	second.SetArgs([]string{dir, "--name", "keeper"})

	err := second.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_NoConfig(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--name", "bare", "--no-config"})

	require.NoError(t, cmd.Execute())

	assert.NoFileExists(t, filepath.Join(dir, ".deckard.yaml"))
	assert.FileExists(t, filepath.Join(dir, "decks", "bare.deck.yaml"))
}

func TestInitCommand_KeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".deckard.yaml")
	custom := "defaults:\n  workers: 9\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0o644))

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--name", "careful"})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestInitCommand_RejectsPathInName(t *testing.T) {
	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), "--name", "../escape"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid path characters")
}
