package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Deck is a full presentation definition as loaded from a deck file.
type Deck struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Audience    string  `yaml:"audience,omitempty" json:"audience,omitempty"`
	Slides      []Slide `yaml:"slides" json:"slides"`
}

// Slide pairs slide content with per-slide analysis options. Options stay
// untyped in the file format; DecodeOptions turns them into SlideOptions.
type Slide struct {
	ID      string         `yaml:"id,omitempty" json:"id,omitempty"`
	Content SlideContent   `yaml:"content" json:"content"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// SlideOptions are the recognized per-slide overrides.
type SlideOptions struct {
	PreferredLayout string  `mapstructure:"preferred_layout"`
	LockLayout      bool    `mapstructure:"lock_layout"`
	MinConfidence   float64 `mapstructure:"min_confidence"`
}

// DecodeOptions decodes the slide's option map. Unknown keys are ignored;
// an empty or nil map yields the zero options.
func (s *Slide) DecodeOptions() (SlideOptions, error) {
	var opts SlideOptions
	if len(s.Options) == 0 {
		return opts, nil
	}
	if err := mapstructure.Decode(s.Options, &opts); err != nil {
		return opts, fmt.Errorf("decoding slide options: %w", err)
	}
	return opts, nil
}

// LoadDeck loads a deck from a YAML or JSON file, keyed on extension, and
// validates it.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deck Deck
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &deck); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &deck); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if deck.Name == "" {
		deck.Name = deckNameFromPath(path)
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return &deck, nil
}

// Validate checks the deck for problems the analyzer cannot work around.
// Slide content itself is never validated here; empty slides are legal.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck %q contains no slides", d.Name)
	}
	seen := make(map[string]bool)
	for i, s := range d.Slides {
		if s.ID == "" {
			continue
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate slide id %q (slide %d)", s.ID, i+1)
		}
		seen[s.ID] = true
		if _, err := s.DecodeOptions(); err != nil {
			return fmt.Errorf("slide %q: %w", s.ID, err)
		}
	}
	return nil
}

// deckNameFromPath derives a deck name from the file name, trimming the
// conventional .deck suffix when present.
func deckNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".deck")
}
