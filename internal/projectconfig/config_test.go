package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	// Paths
	assertEqual(t, "Paths.Decks", "decks/", cfg.Paths.Decks)
	assertEqual(t, "Paths.Results", "results/", cfg.Paths.Results)

	// Defaults
	assertEqualInt(t, "Defaults.Workers", 4, cfg.Defaults.Workers)
	assertBoolPtr(t, "Defaults.Parallel", false, cfg.Defaults.Parallel)
	assertEqualFloat(t, "Defaults.MinConfidence", 0.4, cfg.Defaults.MinConfidence)
	assertEqual(t, "Defaults.Format", "table", cfg.Defaults.Format)

	// Cache
	assertBoolPtr(t, "Cache.Enabled", false, cfg.Cache.Enabled)
	assertEqual(t, "Cache.Dir", ".deckard-cache", cfg.Cache.Dir)

	// Server
	assertEqualInt(t, "Server.Port", 3000, cfg.Server.Port)
	assertEqual(t, "Server.ResultsDir", ".", cfg.Server.ResultsDir)

	// Generation
	assertEqual(t, "Generation.Provider", "static", cfg.Generation.Provider)
	assertEqual(t, "Generation.Model", "", cfg.Generation.Model)
	assertEqualInt(t, "Generation.Slides", 5, cfg.Generation.Slides)

	// Rules
	assertEqual(t, "Rules.WeightsFile", "", cfg.Rules.WeightsFile)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".deckard.yaml", `
paths:
  decks: "custom-decks/"
  results: "custom-results/"
defaults:
  workers: 8
  parallel: true
  min_confidence: 0.6
  format: markdown
cache:
  enabled: true
  dir: ".my-cache"
server:
  port: 8080
  results_dir: "./output"
generation:
  provider: openai
  model: gpt-4o
  rate_limit_rps: 2.5
  slides: 8
rules:
  weights_file: "weights.yaml"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Paths.Decks", "custom-decks/", cfg.Paths.Decks)
	assertEqual(t, "Paths.Results", "custom-results/", cfg.Paths.Results)
	assertEqualInt(t, "Defaults.Workers", 8, cfg.Defaults.Workers)
	assertBoolPtr(t, "Defaults.Parallel", true, cfg.Defaults.Parallel)
	assertEqualFloat(t, "Defaults.MinConfidence", 0.6, cfg.Defaults.MinConfidence)
	assertEqual(t, "Defaults.Format", "markdown", cfg.Defaults.Format)
	assertBoolPtr(t, "Cache.Enabled", true, cfg.Cache.Enabled)
	assertEqual(t, "Cache.Dir", ".my-cache", cfg.Cache.Dir)
	assertEqualInt(t, "Server.Port", 8080, cfg.Server.Port)
	assertEqual(t, "Server.ResultsDir", "./output", cfg.Server.ResultsDir)
	assertEqual(t, "Generation.Provider", "openai", cfg.Generation.Provider)
	assertEqual(t, "Generation.Model", "gpt-4o", cfg.Generation.Model)
	assertEqualFloat(t, "Generation.RateLimitRPS", 2.5, cfg.Generation.RateLimitRPS)
	assertEqualInt(t, "Generation.Slides", 8, cfg.Generation.Slides)
	assertEqual(t, "Rules.WeightsFile", "weights.yaml", cfg.Rules.WeightsFile)
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".deckard.yaml", `
defaults:
  workers: 2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Overridden
	assertEqualInt(t, "Defaults.Workers", 2, cfg.Defaults.Workers)

	// Defaults preserved
	assertEqual(t, "Paths.Decks", "decks/", cfg.Paths.Decks)
	assertEqualFloat(t, "Defaults.MinConfidence", 0.4, cfg.Defaults.MinConfidence)
	assertBoolPtr(t, "Defaults.Parallel", false, cfg.Defaults.Parallel)
	assertEqualInt(t, "Server.Port", 3000, cfg.Server.Port)
	assertEqual(t, "Generation.Provider", "static", cfg.Generation.Provider)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Should be identical to New()
	defaults := New()
	assertEqual(t, "Paths.Decks", defaults.Paths.Decks, cfg.Paths.Decks)
	assertEqualInt(t, "Defaults.Workers", defaults.Defaults.Workers, cfg.Defaults.Workers)
	assertEqualInt(t, "Server.Port", defaults.Server.Port, cfg.Server.Port)
	assertEqual(t, "Generation.Provider", defaults.Generation.Provider, cfg.Generation.Provider)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".deckard.yaml", `
defaults:
  format: [not valid yaml
    this is broken
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should return error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".deckard.yaml", `
defaults:
  format: junit
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Defaults.Format", "junit", cfg.Defaults.Format)
	// Other defaults still populated
	assertEqualInt(t, "Defaults.Workers", 4, cfg.Defaults.Workers)
}

func TestBoolPointerFields(t *testing.T) {
	t.Run("defaults preserved when not set in YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".deckard.yaml", `
defaults:
  workers: 8
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		// Parallel not in file → default (false) preserved by merge
		assertBoolPtr(t, "Defaults.Parallel", false, cfg.Defaults.Parallel)
	})

	t.Run("explicitly false", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".deckard.yaml", `
defaults:
  parallel: false
cache:
  enabled: false
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		assertBoolPtr(t, "Defaults.Parallel", false, cfg.Defaults.Parallel)
		assertBoolPtr(t, "Cache.Enabled", false, cfg.Cache.Enabled)
	})

	t.Run("explicitly true", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".deckard.yaml", `
defaults:
  parallel: true
cache:
  enabled: true
`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		assertBoolPtr(t, "Defaults.Parallel", true, cfg.Defaults.Parallel)
		assertBoolPtr(t, "Cache.Enabled", true, cfg.Cache.Enabled)
	})
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertEqualFloat(t *testing.T, field string, want, got float64) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}

func assertBoolPtr(t *testing.T, field string, want bool, got *bool) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
