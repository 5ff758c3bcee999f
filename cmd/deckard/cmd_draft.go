package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/salscrudato/deckard/internal/generation"
	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/projectconfig"
	"github.com/salscrudato/deckard/internal/scaffold"
	"github.com/salscrudato/deckard/internal/spinner"
)

var (
	draftSlides    int
	draftProvider  string
	draftModel     string
	draftAudience  string
	draftIntent    string
	draftOutput    string
	draftRateLimit float64
	draftWorkers   int
)

// sectionTitles is the outline a drafted deck walks through after its
// opening slide. Trimmed to the requested slide count.
var sectionTitles = []string{
	"Why It Matters",
	"Where We Stand",
	"What the Numbers Say",
	"How It Works",
	"Risks and Mitigations",
	"What Comes Next",
}

func newDraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <topic>",
		Short: "Draft a deck file for a topic",
		Long: `Draft a deck file for a topic using a content provider.

The static provider (default) produces deterministic placeholder content and
needs no credentials. The openai provider calls a chat model; set
OPENAI_API_KEY or configure generation.api settings in .deckard.yaml.

Slides that fail to generate degrade to placeholder content instead of
aborting the draft, so a flaky provider still yields a complete deck.`,
		Args: cobra.ExactArgs(1),
		RunE: draftCommandE,
	}

	cmd.Flags().IntVarP(&draftSlides, "slides", "n", 0, "Number of slides to draft (default: 5)")
	cmd.Flags().StringVar(&draftProvider, "provider", "", "Content provider: static, openai (default: static)")
	cmd.Flags().StringVar(&draftModel, "model", "", "Model name for the openai provider")
	cmd.Flags().StringVar(&draftAudience, "audience", "", "Who the deck is for")
	cmd.Flags().StringVar(&draftIntent, "intent", "inform", "Tone: inform, persuade, explain, showcase")
	cmd.Flags().StringVarP(&draftOutput, "output", "o", "", "Output deck file (default: <topic-slug>.deck.yaml)")
	cmd.Flags().Float64Var(&draftRateLimit, "rate-limit", 0, "Max provider requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&draftWorkers, "workers", 2, "Concurrent slide drafts")

	return cmd
}

func draftCommandE(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(args[0])
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	genCfg := generation.DefaultConfig()
	genCfg.Provider = cfg.Generation.Provider
	genCfg.Model = cfg.Generation.Model
	genCfg.RateLimitRPS = cfg.Generation.RateLimitRPS
	if draftProvider != "" {
		genCfg.Provider = draftProvider
	}
	if draftModel != "" {
		genCfg.Model = draftModel
	}
	if draftRateLimit > 0 {
		genCfg.RateLimitRPS = draftRateLimit
	}

	provider, err := generation.New(genCfg)
	if err != nil {
		return err
	}

	slideCount := draftSlides
	if slideCount <= 0 {
		slideCount = cfg.Generation.Slides
	}
	if slideCount <= 0 {
		slideCount = projectconfig.DefaultGenerationSlides
	}

	titles := draftOutline(topic, slideCount)

	fmt.Printf("Drafting %d slide(s) about %q with the %s provider\n", len(titles), topic, provider.Name())

	spin := spinner.Start(os.Stderr, fmt.Sprintf("drafting slide 0/%d", len(titles)))

	slides := make([]models.Slide, len(titles))
	var degraded []string
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(draftWorkers)

	for i, title := range titles {
		g.Go(func() error {
			content, err := provider.GenerateSlide(gctx, generation.SlideRequest{
				DeckTopic:  topic,
				SlideTitle: title,
				Intent:     draftIntent,
				Audience:   draftAudience,
			})
			if err != nil {
				// Degrade rather than abort: a placeholder keeps the deck whole.
				content = &models.SlideContent{
					Title:   title,
					Bullets: []string{"Draft generation failed - fill this slide in manually"},
				}
				mu.Lock()
				degraded = append(degraded, fmt.Sprintf("%s: %v", title, err))
				mu.Unlock()
			}
			slides[i] = models.Slide{
				ID:      scaffold.Slugify(title),
				Content: *content,
			}

			mu.Lock()
			done++
			spin.Update(fmt.Sprintf("drafting slide %d/%d", done, len(titles)))
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	spin.Stop()
	if err != nil {
		return err
	}

	for _, d := range degraded {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}

	deck := models.Deck{
		Name:     scaffold.Slugify(topic),
		Audience: draftAudience,
		Slides:   dedupeSlideIDs(slides),
	}

	data, err := yaml.Marshal(&deck)
	if err != nil {
		return fmt.Errorf("marshaling deck: %w", err)
	}

	outPath := draftOutput
	if outPath == "" {
		outPath = deck.Name + ".deck.yaml"
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing deck file: %w", err)
	}

	fmt.Printf("Deck written: %s\n", outPath)
	fmt.Printf("Next: deckard analyze %s\n", filepath.Clean(outPath))

	return nil
}

// draftOutline returns the slide titles for a deck of the given size: the
// topic itself opens, then as many section titles as fit.
func draftOutline(topic string, count int) []string {
	titles := []string{topic}
	for _, t := range sectionTitles {
		if len(titles) >= count {
			break
		}
		titles = append(titles, t)
	}
	// More slides requested than the outline holds: number the extras.
	for i := len(titles); i < count; i++ {
		titles = append(titles, fmt.Sprintf("Detail %d", i-len(sectionTitles)))
	}
	return titles
}

// dedupeSlideIDs suffixes repeated IDs so the deck passes validation.
func dedupeSlideIDs(slides []models.Slide) []models.Slide {
	seen := map[string]int{}
	for i := range slides {
		id := slides[i].ID
		if id == "" {
			id = fmt.Sprintf("slide-%d", i+1)
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		slides[i].ID = id
	}
	return slides
}
