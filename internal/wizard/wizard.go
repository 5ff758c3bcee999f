package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/salscrudato/deckard/internal/scaffold"
	"golang.org/x/term"
)

// DeckSpec holds all fields collected during the interactive wizard.
type DeckSpec struct {
	Name         string
	Description  string
	Audience     string
	Topics       []string
	IncludeChart bool
}

// RunDeckWizard runs an interactive huh form to collect starter deck fields.
// If initialName is non-empty, it pre-populates the name field.
func RunDeckWizard(in io.Reader, out io.Writer, initialName string) (*DeckSpec, error) {
	var (
		name         = initialName
		description  string
		audience     string
		topicsRaw    string
		includeChart = true
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Deck name").
				Description("A kebab-case name for the deck file").
				Placeholder("q3-review").
				Value(&name).
				Validate(func(s string) error {
					return scaffold.ValidateName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Description").
				Description("One line on what this deck covers").
				Placeholder("Quarterly business review").
				Value(&description),
			huh.NewInput().
				Title("Audience").
				Description("Who is the deck for?").
				Placeholder("Engineering leadership").
				Value(&audience),
			huh.NewInput().
				Title("Topics").
				Description("Comma-separated topics, one slide each").
				Placeholder("revenue, roadmap, hiring").
				Value(&topicsRaw),
			huh.NewConfirm().
				Title("Include a sample chart slide?").
				Value(&includeChart),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &DeckSpec{
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		Audience:     strings.TrimSpace(audience),
		Topics:       splitAndTrim(topicsRaw),
		IncludeChart: includeChart,
	}, nil
}

// GenerateDeckYAML renders the starter deck file for the given spec.
func GenerateDeckYAML(spec *DeckSpec) string {
	return scaffold.StarterDeckYAML(spec.Name, spec.Description, spec.Audience, spec.Topics, spec.IncludeChart)
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
