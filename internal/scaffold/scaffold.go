// Package scaffold provides shared generators for the starter files written
// by deckard init: a starter deck and a default project config.
package scaffold

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ValidateName rejects names with path-traversal characters or empty names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("deck name must not be empty")
	}
	cleaned := filepath.Clean(name)
	if cleaned == "." || strings.Contains(cleaned, "..") || strings.ContainsAny(cleaned, `/\`) {
		return fmt.Errorf("deck name %q contains invalid path characters", name)
	}
	return nil
}

// TitleCase converts a kebab-case name to Title Case.
func TitleCase(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

var slugRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts free text into a kebab-case slide identifier.
func Slugify(s string) string {
	slug := slugRE.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// defaultTopics seeds the starter deck when the wizard collected none.
var defaultTopics = []string{"Where We Are", "What We Learned", "What Comes Next"}

// StarterDeckYAML generates a starter deck: a title slide, an agenda, one
// slide per topic, an optional sample chart, and a closing slide. The
// placeholder bullets are written to score reasonably so a fresh deck
// analyzes clean out of the box.
func StarterDeckYAML(name, description, audience string, topics []string, includeChart bool) string {
	if len(topics) == 0 {
		topics = defaultTopics
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# %s.deck.yaml - starter deck\n", name)
	fmt.Fprintf(&b, "# Analyze it with: deckard analyze %s.deck.yaml\n\n", name)
	fmt.Fprintf(&b, "name: %q\n", name)
	if description != "" {
		fmt.Fprintf(&b, "description: %q\n", description)
	}
	if audience != "" {
		fmt.Fprintf(&b, "audience: %q\n", audience)
	}

	b.WriteString("\nslides:\n")

	b.WriteString("  - id: opening\n")
	b.WriteString("    content:\n")
	fmt.Fprintf(&b, "      title: %q\n", TitleCase(name))
	if description != "" {
		fmt.Fprintf(&b, "      subtitle: %q\n", description)
	}

	b.WriteString("  - id: agenda\n")
	b.WriteString("    content:\n")
	b.WriteString("      title: Agenda\n")
	b.WriteString("      bullets:\n")
	for _, topic := range topics {
		fmt.Fprintf(&b, "        - %q\n", topic)
	}

	seen := map[string]bool{"opening": true, "agenda": true, "numbers": true, "closing": true}
	for i, topic := range topics {
		id := Slugify(topic)
		if id == "" || seen[id] {
			id = fmt.Sprintf("topic-%d", i+1)
		}
		seen[id] = true

		fmt.Fprintf(&b, "  - id: %s\n", id)
		b.WriteString("    content:\n")
		fmt.Fprintf(&b, "      title: %q\n", topic)
		b.WriteString("      bullets:\n")
		b.WriteString("        - Add your first point here\n")
		b.WriteString("        - Back it up with detail or data\n")
		b.WriteString("        - Close with the takeaway\n")
	}

	if includeChart {
		b.WriteString("  - id: numbers\n")
		b.WriteString("    content:\n")
		b.WriteString("      title: The Numbers\n")
		b.WriteString("      chart:\n")
		b.WriteString("        title: Sample metric by quarter\n")
		b.WriteString("        categories: [Q1, Q2, Q3, Q4]\n")
		b.WriteString("        series:\n")
		b.WriteString("          - name: Actual\n")
		b.WriteString("            data: [3, 5, 4, 7]\n")
		b.WriteString("          - name: Target\n")
		b.WriteString("            data: [4, 4, 5, 6]\n")
	}

	b.WriteString("  - id: closing\n")
	b.WriteString("    content:\n")
	b.WriteString("      title: Questions?\n")

	return b.String()
}

// ProjectConfigYAML returns a commented default .deckard.yaml.
func ProjectConfigYAML() string {
	return `# deckard project configuration
paths:
  decks: decks/
  results: results/

defaults:
  workers: 4
  parallel: false
  min_confidence: 0.4
  format: table

cache:
  enabled: true
  dir: .deckard-cache

server:
  port: 3000
  results_dir: results/

generation:
  provider: static
  slides: 5
`
}
