// Package importer converts a markdown document into a deck: the first
// top-level heading becomes the title slide, second-level headings become
// section slides and title the block that follows them, lists become bullets
// slides, fenced code becomes code slides (mermaid fences become diagram
// slides), and blockquotes become quote slides.
package importer

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// markdown is shared across calls; the parser is safe to reuse, each Parse
// call creates its own reader state.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Parse converts markdown source into a project. The project keeps the
// default theme; Parse fails when the document contains nothing that maps to
// a slide.
func Parse(src []byte) (*deck.Project, error) {
	doc := markdown.Parser().Parse(text.NewReader(src))

	b := &builder{source: src, project: deck.NewProject()}
	b.project.Slides = nil

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		b.block(node)
	}

	if len(b.project.Slides) == 0 {
		return nil, fmt.Errorf("parsing markdown: no convertible content")
	}
	return b.project, nil
}

// builder accumulates slides while walking top-level blocks. A heading that
// is not itself a slide is held as the pending title for the next list or
// code block.
type builder struct {
	source  []byte
	project *deck.Project

	pendingTitle string
	sections     int
	sawTitle     bool
}

func (b *builder) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		b.heading(n)
	case *ast.List:
		b.list(n)
	case *ast.FencedCodeBlock:
		b.fencedCode(n)
	case *ast.Blockquote:
		b.blockquote(n)
	case *ast.Paragraph:
		b.paragraph(n)
	}
}

func (b *builder) heading(h *ast.Heading) {
	title := b.inlineText(h)
	if title == "" {
		return
	}

	if h.Level == 1 && !b.sawTitle {
		b.sawTitle = true
		b.project.Name = title
		b.project.Metadata.Title = title
		b.append(deck.KindTitle, &deck.TitleData{Title: title})
		return
	}

	if h.Level <= 2 {
		b.sections++
		b.append(deck.KindSection, &deck.SectionData{
			Title:  title,
			Number: fmt.Sprintf("%02d", b.sections),
		})
		b.pendingTitle = title
		return
	}

	// Deeper headings only title the block that follows.
	b.pendingTitle = title
}

// paragraph text directly after the title slide becomes its subtitle;
// elsewhere paragraphs carry no layout of their own and are dropped.
func (b *builder) paragraph(p *ast.Paragraph) {
	text := b.inlineText(p)
	if text == "" || len(b.project.Slides) == 0 {
		return
	}
	last := &b.project.Slides[len(b.project.Slides)-1]
	if title, ok := last.Data.(*deck.TitleData); ok && title.Subtitle == "" {
		title.Subtitle = text
	}
}

func (b *builder) list(l *ast.List) {
	var items []deck.BulletItem
	b.collectItems(l, 0, &items)
	if len(items) == 0 {
		return
	}
	b.append(deck.KindBullets, &deck.BulletsData{
		Title: b.takeTitle(),
		Items: items,
	})
}

// collectItems flattens nested lists into leveled bullet items, matching the
// renderer's flat-list model.
func (b *builder) collectItems(l *ast.List, level int, items *[]deck.BulletItem) {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				b.collectItems(c, level+1, items)
			default:
				if text := b.inlineText(c); text != "" {
					*items = append(*items, deck.BulletItem{Text: text, Level: level})
				}
			}
		}
	}
}

func (b *builder) fencedCode(f *ast.FencedCodeBlock) {
	language := string(f.Language(b.source))
	var code strings.Builder
	lines := f.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(b.source))
	}
	source := strings.TrimRight(code.String(), "\n")

	if language == "mermaid" {
		b.append(deck.KindMermaid, &deck.MermaidData{
			Title:  b.takeTitle(),
			Source: source,
		})
		return
	}
	b.append(deck.KindCode, &deck.CodeData{
		Title:    b.takeTitle(),
		Language: language,
		Code:     source,
	})
}

func (b *builder) blockquote(q *ast.Blockquote) {
	var parts []string
	for child := q.FirstChild(); child != nil; child = child.NextSibling() {
		if text := b.inlineText(child); text != "" {
			parts = append(parts, text)
		}
	}
	quote := strings.Join(parts, " ")
	if quote == "" {
		return
	}

	data := &deck.QuoteData{Text: quote}
	// An em-dash or double-dash tail names the author.
	for _, sep := range []string{"—", "--"} {
		if idx := strings.LastIndex(quote, sep); idx > 0 {
			data.Text = strings.TrimSpace(quote[:idx])
			data.AuthorName = strings.TrimSpace(quote[idx+len(sep):])
			break
		}
	}
	b.append(deck.KindQuote, data)
}

func (b *builder) append(kind deck.TemplateKind, data deck.SlideData) {
	b.project.Slides = append(b.project.Slides, deck.Slide{
		Template: kind,
		Data:     data,
	})
}

// takeTitle consumes the pending heading, if any.
func (b *builder) takeTitle() string {
	t := b.pendingTitle
	b.pendingTitle = ""
	return t
}

// inlineText collects the plain text of a node's inline content.
func (b *builder) inlineText(node ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(b.source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
