package signals

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/salscrudato/deckard/internal/models"
)

// FromMarkdown flattens a markdown body into slide content: the first
// heading becomes the title, a deeper heading the subtitle, top-level list
// items become bullets, the first blockquote the quote, and remaining
// paragraphs are joined into the paragraph field. Inline images are
// collected by destination and alt text.
func FromMarkdown(body string) models.SlideContent {
	source := []byte(body)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var content models.SlideContent
	var paragraphs []string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			txt := strings.TrimSpace(nodeText(v, source))
			switch {
			case content.Title == "":
				content.Title = txt
			case content.Subtitle == "" && v.Level > 1:
				content.Subtitle = txt
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			if txt := strings.TrimSpace(nodeText(v, source)); txt != "" {
				content.Bullets = append(content.Bullets, txt)
			}
			content.Images = append(content.Images, collectImages(v, source)...)
			return ast.WalkSkipChildren, nil
		case *ast.Blockquote:
			if txt := strings.TrimSpace(nodeText(v, source)); txt != "" && content.Quote == "" {
				content.Quote = txt
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			content.Images = append(content.Images, collectImages(v, source)...)
			if txt := strings.TrimSpace(proseOnlyText(v, source)); txt != "" {
				paragraphs = append(paragraphs, txt)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	content.Paragraph = strings.Join(paragraphs, "\n\n")
	return content
}

// DeckFromMarkdown splits a markdown document on "---" separator lines and
// turns each section into one slide, Marp-style. Sections that flatten to
// nothing are dropped; a document with no separators becomes a one-slide
// deck.
func DeckFromMarkdown(name, body string) *models.Deck {
	deck := &models.Deck{Name: name}

	section := 0
	for _, chunk := range splitSlideSections(body) {
		section++
		content := FromMarkdown(chunk)
		if content.IsEmpty() {
			continue
		}
		deck.Slides = append(deck.Slides, models.Slide{
			ID:      fmt.Sprintf("slide-%d", section),
			Content: content,
		})
	}
	return deck
}

func splitSlideSections(body string) []string {
	var sections []string
	var current []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "---" {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	sections = append(sections, strings.Join(current, "\n"))
	return sections
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// proseOnlyText is nodeText minus image subtrees, so alt text does not
// leak into paragraph prose.
func proseOnlyText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := c.(*ast.Image); ok {
			return ast.WalkSkipChildren, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func collectImages(n ast.Node, source []byte) []models.ImageRef {
	var images []models.ImageRef
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := c.(*ast.Image); ok {
			images = append(images, models.ImageRef{
				URL: string(img.Destination),
				Alt: nodeText(img, source),
			})
		}
		return ast.WalkContinue, nil
	})
	return images
}
