package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/cache"
	"github.com/salscrudato/deckard/internal/discovery"
	"github.com/salscrudato/deckard/internal/engine"
	"github.com/salscrudato/deckard/internal/imaging"
	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/orchestration"
	"github.com/salscrudato/deckard/internal/projectconfig"
	"github.com/salscrudato/deckard/internal/render"
	"github.com/salscrudato/deckard/internal/reporting"
	"github.com/salscrudato/deckard/internal/rules"
	"github.com/salscrudato/deckard/internal/signals"
)

var (
	analyzeAll    bool
	decksDir      string
	outputPath    string
	storeResults  bool
	resultsDir    string
	verbose       bool
	slideFilters  []string
	parallel      bool
	workers       int
	minConfidence float64
	format        string
	interpret     bool
	enableCache   bool
	disableCache  bool
	runCacheDir   string
	weightsFile   string
	planDir       string
)

// deckResult pairs a deck source path with its analysis outcome.
type deckResult struct {
	name    string
	outcome *models.DeckOutcome
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [deck files...]",
		Short: "Analyze deck files and recommend layouts",
		Long: `Analyze one or more deck files and recommend a layout for each slide.

Deck files are YAML or JSON (*.deck.yaml, *.deck.yml, *.deck.json). Plain
markdown files are also accepted: "---" separator lines split them into
slides. With --all, decks are discovered under the project decks directory.

Settings fall back to .deckard.yaml when present; flags win over the file.`,
		Args: cobra.ArbitraryArgs,
		RunE: analyzeCommandE,
	}

	cmd.Flags().BoolVar(&analyzeAll, "all", false, "Analyze every deck under the decks directory")
	cmd.Flags().StringVar(&decksDir, "decks-dir", "", "Directory searched by --all (default: from .deckard.yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file for the report in the selected format")
	cmd.Flags().BoolVar(&storeResults, "store", false, "Store outcome JSON in the results directory for 'deckard serve'")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Results directory used by --store (default: from .deckard.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with detailed progress")
	cmd.Flags().StringArrayVar(&slideFilters, "slide", nil, "Filter slides by ID/title glob pattern (can be repeated)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Analyze slides concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Confidence gate below which slides are flagged (default: 0.4)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: table, markdown, json, junit")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().BoolVar(&enableCache, "cache", false, "Enable slide result caching")
	cmd.Flags().BoolVar(&disableCache, "no-cache", false, "Disable slide result caching")
	cmd.Flags().StringVar(&runCacheDir, "cache-dir", "", "Cache directory (default: .deckard-cache)")
	cmd.Flags().StringVar(&weightsFile, "weights", "", "YAML file with rule weight overrides")
	cmd.Flags().StringVar(&planDir, "plan-dir", "", "Write a renderer layout plan per deck into this directory")

	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	applyAnalyzeDefaults(cmd, cfg)

	deckPaths, err := collectDeckPaths(args)
	if err != nil {
		return err
	}

	eng, err := buildEngine(weightsFile)
	if err != nil {
		return err
	}

	runner, err := buildRunner(eng)
	if err != nil {
		return err
	}

	if verbose {
		runner.OnProgress(verboseProgressListener)
	} else if format == "" || format == "table" {
		runner.OnProgress(simpleProgressListener)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []deckResult
	totalFlagged := 0

	for _, path := range deckPaths {
		deck, err := loadDeckFile(path)
		if err != nil {
			return err
		}

		if verbose {
			fmt.Printf("Analyzing deck: %s (%d slides)\n", deck.Name, len(deck.Slides))
			fmt.Printf("Ruleset: %s\n", eng.Registry().Fingerprint())
			fmt.Println()
		}

		outcome, err := runner.AnalyzeDeck(ctx, deck)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}

		if err := emitReport(outcome); err != nil {
			return err
		}

		if storeResults {
			stored, err := storeOutcome(outcome, resultsDir)
			if err != nil {
				return fmt.Errorf("storing results for %s: %w", deck.Name, err)
			}
			fmt.Printf("Results stored: %s\n", stored)
		}

		if planDir != "" {
			writer := render.NewPlanWriter(planDir, render.WithFitter(imaging.PassThrough{}))
			if err := writer.Render(ctx, deck, outcome); err != nil {
				return fmt.Errorf("writing layout plan for %s: %w", deck.Name, err)
			}
			fmt.Printf("Layout plan written: %s\n", filepath.Join(planDir, render.Filename(outcome.DeckName)))
		}

		totalFlagged += outcome.Digest.Flagged
		results = append(results, deckResult{name: path, outcome: outcome})
	}

	if len(results) > 1 {
		printDeckComparison(results)
	}

	if totalFlagged > 0 {
		return &AnalysisFailureError{
			Message: fmt.Sprintf("analysis completed with %d flagged slide(s) across %d deck(s)", totalFlagged, len(results)),
		}
	}

	return nil
}

// applyAnalyzeDefaults fills unset flags from the project config.
func applyAnalyzeDefaults(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) {
	if decksDir == "" {
		decksDir = cfg.Paths.Decks
	}
	if resultsDir == "" {
		resultsDir = cfg.Paths.Results
	}
	if format == "" {
		format = cfg.Defaults.Format
	}
	if !cmd.Flags().Changed("min-confidence") {
		minConfidence = cfg.Defaults.MinConfidence
	}
	if !cmd.Flags().Changed("parallel") && cfg.Defaults.Parallel != nil {
		parallel = *cfg.Defaults.Parallel
	}
	if workers == 0 {
		workers = cfg.Defaults.Workers
	}
	if !cmd.Flags().Changed("cache") && cfg.Cache.Enabled != nil {
		enableCache = *cfg.Cache.Enabled
	}
	if runCacheDir == "" {
		runCacheDir = cfg.Cache.Dir
	}
	if weightsFile == "" {
		weightsFile = cfg.Rules.WeightsFile
	}
}

// collectDeckPaths resolves positional arguments or discovers decks when
// --all is set.
func collectDeckPaths(args []string) ([]string, error) {
	if analyzeAll {
		found, err := discovery.Discover(decksDir)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no deck files found under %s", decksDir)
		}
		paths := make([]string, 0, len(found))
		for _, d := range found {
			paths = append(paths, d.Path)
		}
		return paths, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no deck files given (pass paths or use --all)")
	}
	return args, nil
}

// buildEngine builds the scoring engine, applying weight overrides when a
// weights file is configured.
func buildEngine(weightsPath string) (*engine.Engine, error) {
	var opts []rules.Option
	if weightsPath != "" {
		overrides, err := rules.LoadWeightOverrides(weightsPath)
		if err != nil {
			return nil, fmt.Errorf("loading weight overrides: %w", err)
		}
		opts = append(opts, rules.WithWeightOverrides(overrides))
	}

	reg, err := rules.NewRegistry(opts...)
	if err != nil {
		return nil, fmt.Errorf("building rule registry: %w", err)
	}
	return engine.New(reg), nil
}

func buildRunner(eng *engine.Engine) (*orchestration.DeckRunner, error) {
	runnerOpts := []orchestration.RunnerOption{
		orchestration.WithSlideFilters(slideFilters...),
		orchestration.WithMinConfidence(minConfidence),
	}

	if parallel {
		runnerOpts = append(runnerOpts, orchestration.WithParallel(workers))
	}

	useCaching := enableCache && !disableCache
	if useCaching {
		absCacheDir, err := filepath.Abs(runCacheDir)
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}
		runnerOpts = append(runnerOpts, orchestration.WithCache(cache.New(absCacheDir)))
		if verbose {
			fmt.Printf("Cache enabled: %s\n", absCacheDir)
		}
	}

	return orchestration.NewDeckRunner(eng, runnerOpts...), nil
}

// loadDeckFile loads a deck from YAML, JSON or markdown, keyed on extension.
func loadDeckFile(path string) (*models.Deck, error) {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		deck := signals.DeckFromMarkdown(discovery.DeckName(path), string(data))
		if err := deck.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return deck, nil
	}

	deck, err := models.LoadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return deck, nil
}

// emitReport renders one outcome to stdout (or --output) in the selected
// format.
func emitReport(outcome *models.DeckOutcome) error {
	switch format {
	case "table", "":
		printSummary(outcome)
		if interpret {
			fmt.Println()
			fmt.Print(reporting.FormatInterpretation(outcome))
		}
		if outputPath != "" {
			if err := saveOutcome(outcome, outputPath); err != nil {
				return fmt.Errorf("failed to save output: %w", err)
			}
			fmt.Printf("\nResults saved to: %s\n", outputPath)
		}
		return nil
	case "markdown":
		return writeReport(reporting.FormatMarkdownReport(outcome))
	case "json":
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		return writeReport(string(data) + "\n")
	case "junit":
		if outputPath != "" {
			return reporting.WriteJUnitXML(outcome, outputPath)
		}
		data, err := xml.MarshalIndent(reporting.ConvertToJUnit(outcome), "", "  ")
		if err != nil {
			return err
		}
		fmt.Print(xml.Header + string(data) + "\n")
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (supported: table, markdown, json, junit)", format)
	}
}

// writeReport sends a rendered report to --output or stdout.
func writeReport(content string) error {
	if outputPath == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(outputPath, []byte(content), 0644)
}

// storeOutcome persists the outcome JSON into the results directory using a
// name the dashboard server lists as the analysis ID.
func storeOutcome(outcome *models.DeckOutcome, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.json", sanitizeDeckName(outcome.DeckName), outcome.Timestamp.Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := saveOutcome(outcome, path); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeDeckName replaces characters that are invalid in filenames.
func sanitizeDeckName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	return r.Replace(name)
}

func verboseProgressListener(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventDeckStart:
		fmt.Printf("Starting analysis of %d slide(s)...\n\n", event.TotalSlides)
	case orchestration.EventSlideStart:
		fmt.Printf("[%d/%d] Analyzing slide: %s\n", event.SlideNum, event.TotalSlides, event.SlideID)
	case orchestration.EventSlideCached:
		fmt.Printf("[%d/%d] Slide %s → %s (%.2f) [cached]\n",
			event.SlideNum, event.TotalSlides, event.SlideID, event.Layout, event.Confidence)
	case orchestration.EventSlideComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("[%d/%d] Slide %s → %s (%.2f) %s (%v)\n",
			event.SlideNum, event.TotalSlides, event.SlideID, event.Layout,
			event.Confidence, event.Status, duration)
	case orchestration.EventDeckComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("\nAnalysis completed in %v\n\n", duration)
	}
}

func simpleProgressListener(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventSlideCached:
		fmt.Printf("%s [%d/%d] %s [cached]\n", statusGlyph(event.Status), event.SlideNum, event.TotalSlides, event.SlideID)
	case orchestration.EventSlideComplete:
		fmt.Printf("%s [%d/%d] %s\n", statusGlyph(event.Status), event.SlideNum, event.TotalSlides, event.SlideID)
	}
}

func saveOutcome(outcome *models.DeckOutcome, path string) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
