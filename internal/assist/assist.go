// Package assist drafts a deck from a plain-text outline through an
// OpenAI-compatible chat completion. The model answers in JSON and the reply
// goes through the same tagged-union slide decoder as stored documents, so a
// hallucinated template kind degrades to the editor's fallback slide instead
// of failing the draft.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/theme"
)

const systemPrompt = `You are a slide deck writer. Given an outline, produce a JSON object:
{"name": "<deck name>", "theme": "<one of: %s>", "slides": [{"template": "<kind>", "data": {...}}]}

Template kinds and their data fields:
- "title": {"title", "subtitle", "author", "date"}
- "section": {"title", "subtitle", "number"}
- "bullets": {"title", "items": [{"text", "level"}]}
- "two-columns": {"title", "left": {"heading", "items"}, "right": {"heading", "items"}}
- "quote": {"text", "authorName", "authorTitle"}
- "stats": {"title", "items": [{"value", "label", "description"}]}
- "code": {"title", "language", "code", "caption"}
- "timeline": {"title", "steps": [{"title", "description", "label"}]}
- "comparison": {"title", "columns", "rows": [[cell, ...]]} where a cell is a string or boolean
- "mermaid": {"title", "source", "caption"}
- "agenda": {"title", "items", "numbered"}

Open with a title slide, keep each slide focused, and answer with JSON only.`

// chatClient is the slice of go-openai the drafter uses; *openai.Client
// satisfies it, tests substitute a canned fake.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Drafter turns outlines into draft projects.
type Drafter struct {
	client chatClient
	model  string
}

// NewDrafter creates a drafter against an OpenAI-compatible endpoint.
// baseURL may be empty for api.openai.com.
func NewDrafter(apiKey, baseURL, model string) *Drafter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Drafter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// draftWire is the reply shape the prompt asks for.
type draftWire struct {
	Name   string       `json:"name"`
	Theme  string       `json:"theme"`
	Slides []deck.Slide `json:"slides"`
}

// Draft produces a project from an outline.
func (d *Drafter) Draft(ctx context.Context, outline string) (*deck.Project, error) {
	outline = strings.TrimSpace(outline)
	if outline == "" {
		return nil, fmt.Errorf("drafting deck: empty outline")
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPrompt, strings.Join(theme.Names(), ", ")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: outline,
			},
		},
		Temperature: 0.4,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("requesting draft: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("requesting draft: empty response")
	}

	return decodeDraft(resp.Choices[0].Message.Content)
}

// decodeDraft parses the model reply into a project. Code fences around the
// JSON are tolerated; models add them even in JSON mode.
func decodeDraft(reply string) (*deck.Project, error) {
	var w draftWire
	if err := json.Unmarshal([]byte(stripFences(reply)), &w); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	if len(w.Slides) == 0 {
		return nil, fmt.Errorf("decoding draft: no slides")
	}

	p := deck.NewProject()
	p.Slides = w.Slides
	if w.Name != "" {
		p.Name = w.Name
		p.Metadata.Title = w.Name
	}
	if _, err := theme.Base(w.Theme); err == nil {
		p.Theme.Base = w.Theme
	}
	return p, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the fence's language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
