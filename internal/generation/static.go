package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/salscrudato/deckard/internal/models"
)

// staticProvider produces deterministic offline content. The same
// request always yields the same slide, which keeps drafted decks and
// their analyses reproducible.
type staticProvider struct{}

// Name returns the provider name
func (s *staticProvider) Name() string {
	return "static"
}

// GenerateSlide builds templated content from the request alone.
func (s *staticProvider) GenerateSlide(_ context.Context, req SlideRequest) (*models.SlideContent, error) {
	topic := orDefault(req.DeckTopic, "the topic")
	title := orDefault(req.SlideTitle, topic)
	audience := orDefault(req.Audience, "the audience")

	content := &models.SlideContent{
		Title:        title,
		SpeakerNotes: fmt.Sprintf("Draft slide about %s for %s. Replace with real material.", topic, audience),
	}

	switch strings.ToLower(req.Intent) {
	case "persuade":
		content.Quote = fmt.Sprintf("Now is the moment to invest in %s.", topic)
		content.Attribution = "Draft placeholder"
	case "showcase":
		content.Subtitle = fmt.Sprintf("What %s looks like today", topic)
		content.Images = []models.ImageRef{{
			Path: "assets/" + slugify(title) + ".png",
			Alt:  title,
		}}
	case "explain":
		content.Paragraph = fmt.Sprintf(
			"This slide walks %s through how %s works, step by step, and where it fits into the bigger picture.",
			audience, topic)
	default:
		content.Bullets = []string{
			fmt.Sprintf("What %s means for %s", topic, audience),
			"Where we stand today",
			"What happens next",
		}
	}

	return content, nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "slide"
	}
	return b.String()
}
