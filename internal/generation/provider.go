// Package generation drafts slide content through pluggable providers.
// The OpenAI provider calls a chat model; the static provider produces
// deterministic content for offline use and tests. Both return the same
// SlideContent the analysis pipeline consumes.
package generation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/salscrudato/deckard/internal/models"
)

// Provider defines the interface for slide generators.
type Provider interface {
	// Name returns the provider name
	Name() string

	// GenerateSlide drafts the content for one slide
	GenerateSlide(ctx context.Context, req SlideRequest) (*models.SlideContent, error)
}

// SlideRequest describes one slide to draft.
type SlideRequest struct {
	// DeckTopic is the overall subject of the deck
	DeckTopic string

	// SlideTitle is the working title for this slide
	SlideTitle string

	// Intent steers the tone: inform, persuade, explain or showcase
	Intent string

	// Audience describes who the deck is for
	Audience string
}

// Config holds generation provider configuration.
type Config struct {
	// Provider name: "openai", "static", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI; falls back to OPENAI_API_KEY
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// RateLimitRPS caps outbound calls; 0 disables limiting
	RateLimitRPS float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "static",
		Timeout:   30,
		MaxTokens: 1200,
	}
}

// New creates a provider based on configuration. The static provider is
// the default so drafting works without credentials.
func New(config Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch strings.ToLower(config.Provider) {
	case "openai":
		p, err = newOpenAIProvider(config)
	case "static", "":
		p = &staticProvider{}
	default:
		return nil, fmt.Errorf("unknown generation provider: %s (supported: openai, static)", config.Provider)
	}
	if err != nil {
		return nil, err
	}
	return RateLimited(p, config.RateLimitRPS), nil
}

func resolveAPIKey(config Config) string {
	if config.APIKey != "" {
		return config.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
