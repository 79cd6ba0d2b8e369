package assist

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// fakeChat returns a canned reply, recording the request.
type fakeChat struct {
	reply string
	err   error
	req   openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

const draftReply = `{
  "name": "Edge Caching",
  "theme": "forest",
  "slides": [
    {"template": "title", "data": {"title": "Edge Caching", "subtitle": "Design review"}},
    {"template": "bullets", "data": {"title": "Goals", "items": ["Latency", {"text": "Cost", "level": 1}]}},
    {"template": "hologram", "data": {"anything": true}}
  ]
}`

func TestDraftDecodesReply(t *testing.T) {
	fake := &fakeChat{reply: draftReply}
	d := &Drafter{client: fake, model: "gpt-4o-mini"}

	p, err := d.Draft(context.Background(), "deck about edge caching")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	if p.Name != "Edge Caching" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Theme.Base != "forest" {
		t.Errorf("theme = %q", p.Theme.Base)
	}
	if len(p.Slides) != 3 {
		t.Fatalf("slides = %d", len(p.Slides))
	}

	bullets, ok := p.Slides[1].Data.(*deck.BulletsData)
	if !ok {
		t.Fatalf("second slide data is %T", p.Slides[1].Data)
	}
	if len(bullets.Items) != 2 || bullets.Items[1].Level != 1 {
		t.Errorf("bullet items = %+v", bullets.Items)
	}

	// A hallucinated kind survives as unknown data, not an error.
	if _, ok := p.Slides[2].Data.(*deck.UnknownData); !ok {
		t.Errorf("unknown kind decoded as %T", p.Slides[2].Data)
	}

	if fake.req.ResponseFormat == nil || fake.req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Error("request did not ask for JSON mode")
	}
}

func TestDraftStripsCodeFence(t *testing.T) {
	fake := &fakeChat{reply: "```json\n" + draftReply + "\n```"}
	d := &Drafter{client: fake, model: "gpt-4o-mini"}

	p, err := d.Draft(context.Background(), "outline")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if len(p.Slides) != 3 {
		t.Errorf("slides = %d", len(p.Slides))
	}
}

func TestDraftUnknownThemeFallsBack(t *testing.T) {
	fake := &fakeChat{reply: `{"name":"x","theme":"neon","slides":[{"template":"title","data":{"title":"x"}}]}`}
	d := &Drafter{client: fake, model: "gpt-4o-mini"}

	p, err := d.Draft(context.Background(), "outline")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if p.Theme.Base != deck.DefaultThemeName {
		t.Errorf("theme = %q, want default", p.Theme.Base)
	}
}

func TestDraftErrors(t *testing.T) {
	d := &Drafter{client: &fakeChat{reply: "{}"}, model: "m"}
	if _, err := d.Draft(context.Background(), "outline"); err == nil {
		t.Error("expected error for reply without slides")
	}

	d = &Drafter{client: &fakeChat{err: errors.New("boom")}, model: "m"}
	if _, err := d.Draft(context.Background(), "outline"); err == nil {
		t.Error("expected transport error to propagate")
	}

	d = &Drafter{client: &fakeChat{reply: "{}"}, model: "m"}
	if _, err := d.Draft(context.Background(), "   "); err == nil {
		t.Error("expected error for empty outline")
	}
}
