package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/signals"
)

const systemPrompt = "You are a presentation writer. You return exactly one slide as strict JSON " +
	"with no commentary. Prefer concrete numbers, short bullets and plain language."

const slideJSONSummary = `Slide JSON fields (all optional, omit what the slide does not need):
- title, subtitle, paragraph (strings)
- bullets (array of strings, 3 to 5 items)
- quote, attribution (strings)
- chart: {title, categories: [..], series: [{name, data: [numbers]}]}
- table: {headers: [..], rows: [[..]]}
- comparisonTable: {headers: [..], rows: [[..]]}
- timeline: [{date, title, description}]
- images: [{url, alt, caption}]
- speakerNotes (string)`

// openAIProvider implements Provider on the OpenAI chat completions API.
type openAIProvider struct {
	client *openai.Client
	config Config
}

func newOpenAIProvider(config Config) (*openAIProvider, error) {
	key := resolveAPIKey(config)
	if key == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(key)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &openAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *openAIProvider) Name() string {
	return "openai"
}

// GenerateSlide drafts one slide via a single chat completion call.
func (p *openAIProvider) GenerateSlide(ctx context.Context, req SlideRequest) (*models.SlideContent, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1200
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content, err := ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing generated slide: %w", err)
	}
	return content, nil
}

// buildPrompt constructs the user prompt for one slide.
func buildPrompt(req SlideRequest) string {
	var b strings.Builder
	b.WriteString("Write one presentation slide.\n\n")
	b.WriteString("Slide context:\n")
	b.WriteString(fmt.Sprintf("- Deck topic: %s\n", orDefault(req.DeckTopic, "general business update")))
	b.WriteString(fmt.Sprintf("- Slide title: %s\n", orDefault(req.SlideTitle, "untitled")))
	b.WriteString(fmt.Sprintf("- Intent: %s\n", orDefault(req.Intent, "inform")))
	b.WriteString(fmt.Sprintf("- Audience: %s\n\n", orDefault(req.Audience, "a general audience")))
	b.WriteString("Return ONLY a JSON object in this shape:\n\n")
	b.WriteString(slideJSONSummary)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Use a chart or table only when the slide is genuinely about data.\n")
	b.WriteString("- Keep bullets under 15 words each.\n")
	b.WriteString("- Put delivery guidance into speakerNotes, never onto the slide.\n")
	return b.String()
}

// ParseResponse turns raw model output into slide content. Strict JSON
// is tried first, with code fences stripped; anything else is read as
// markdown so partial answers still yield a usable slide.
func ParseResponse(raw string) (*models.SlideContent, error) {
	block := extractBlock(raw)
	if block == "" {
		return nil, errors.New("empty generation response")
	}

	var content models.SlideContent
	if err := json.Unmarshal([]byte(block), &content); err == nil && !content.IsEmpty() {
		return &content, nil
	}

	content = signals.FromMarkdown(block)
	if content.IsEmpty() {
		return nil, errors.New("response contained no usable slide content")
	}
	return &content, nil
}

// extractBlock returns the body of the first fenced code block, or the
// trimmed input when no fence is present.
func extractBlock(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}

	rest := trimmed[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		return strings.TrimSpace(rest[:end])
	}

	return trimmed
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
