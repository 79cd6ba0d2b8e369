// Package export turns a project into a single self-contained HTML document:
// the same slide renderers as the editor, fixed 1280x720 frames scaled to the
// viewport, the resolved theme inlined as custom properties, and speaker
// notes rendered below each slide. Output is deterministic: the same project
// always produces the same bytes.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/render"
	"github.com/deckweaver/deckweaver/internal/theme"
)

// notesMarkdown renders speaker notes. GFM plus syntax highlighting, same
// stack as the importer.
var notesMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// GenerateDocument renders the full deck as one standalone HTML page.
func GenerateDocument(p *deck.Project) (string, error) {
	resolved, err := theme.ResolveColors(p.Theme)
	if err != nil {
		return "", fmt.Errorf("resolving theme: %w", err)
	}

	title := strings.TrimSpace(p.Metadata.Title)
	if title == "" {
		title = strings.TrimSpace(p.Name)
	}
	if title == "" {
		title = "Untitled deck"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<script src=\"https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js\"></script>\n")
	b.WriteString("<style>\n:root {\n")
	b.WriteString(theme.CustomProperties(resolved))
	b.WriteString("}\n")
	b.WriteString(documentCSS)
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<header class=\"dw-doc-header\"><h1>%s</h1></header>\n", html.EscapeString(title))
	b.WriteString("<main class=\"dw-deck\">\n")
	for i, s := range p.Slides {
		fmt.Fprintf(&b, "<article class=\"dw-page\" data-index=\"%d\">\n", i)
		b.WriteString("<div class=\"dw-frame\">")
		b.WriteString(render.Slide(s, resolved))
		b.WriteString("</div>\n")
		if strings.TrimSpace(s.Notes) != "" {
			notes, err := renderNotes(s.Notes)
			if err != nil {
				return "", fmt.Errorf("rendering notes for slide %d: %w", i, err)
			}
			b.WriteString("<aside class=\"dw-notes\">\n")
			b.WriteString(notes)
			b.WriteString("</aside>\n")
		}
		b.WriteString("</article>\n")
	}
	b.WriteString("</main>\n")

	b.WriteString("<script>\n")
	b.WriteString(documentScript)
	b.WriteString("</script>\n</body>\n</html>\n")
	return b.String(), nil
}

// renderNotes converts a slide's markdown speaker notes to HTML.
func renderNotes(notes string) (string, error) {
	var buf bytes.Buffer
	if err := notesMarkdown.Convert([]byte(notes), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
