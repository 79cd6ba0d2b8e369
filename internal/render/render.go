// Package render turns a slide's {template, data} pair into a styled,
// self-contained HTML fragment. Every renderer is pure and total over its
// data shape: missing fields degrade field-by-field, user text is always
// escaped, and an unrecognized template kind yields a visible fallback
// rather than an error.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/theme"
)

// esc escapes user-supplied text for interpolation into markup, including
// attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// editable emits the attributes marking an element as inline-editable text.
// path addresses the field inside the slide's data object.
func editable(path string) string {
	return ` class="dw-editable" data-path="` + esc(path) + `"`
}

// Slide renders a complete slide section: the template fragment wrapped in
// the fixed slide container, with the slide's sparse color overrides bound
// as inline custom properties. resolved is the project's resolved theme
// color map.
func Slide(s deck.Slide, resolved map[string]string) string {
	style := theme.ResolveSlideStyle(s.Template, s.Colors, resolved)
	styleAttr := ""
	if style != "" {
		styleAttr = ` style="` + esc(style) + `"`
	}
	return fmt.Sprintf(`<section class="dw-slide dw-%s"%s>%s</section>`,
		esc(string(s.Template)), styleAttr, Fragment(s.Data))
}

// Fragment dispatches over the closed set of data shapes. The type switch is
// the single dispatch point: adding a template kind means adding a case here
// and a renderer below. Nil or unknown data renders the visible fallback.
func Fragment(data deck.SlideData) string {
	switch d := data.(type) {
	case *deck.TitleData:
		return renderTitle(d)
	case *deck.SectionData:
		return renderSection(d)
	case *deck.BulletsData:
		return renderBullets(d)
	case *deck.TwoColumnsData:
		return renderTwoColumns(d)
	case *deck.ImageTextData:
		return renderImageText(d)
	case *deck.QuoteData:
		return renderQuote(d)
	case *deck.StatsData:
		return renderStats(d)
	case *deck.CodeData:
		return renderCode(d)
	case *deck.CodeAnnotatedData:
		return renderCodeAnnotated(d)
	case *deck.TimelineData:
		return renderTimeline(d)
	case *deck.ComparisonData:
		return renderComparison(d)
	case *deck.MermaidData:
		return renderMermaid(d)
	case *deck.AgendaData:
		return renderAgenda(d)
	case *deck.DrawioData:
		return renderDrawio(d)
	case *deck.UnknownData:
		return fallback(d.Template)
	case nil:
		return fallback("")
	default:
		return fallback(data.Kind())
	}
}

// fallback is the visible never-throw fragment for corrupt or future slide
// kinds.
func fallback(kind deck.TemplateKind) string {
	label := string(kind)
	if label == "" {
		label = "empty"
	}
	return `<div class="dw-fallback"><p>Unsupported slide type: <code>` + esc(label) + `</code></p></div>`
}

// heading renders the standard slide title bar, or nothing when the title is
// empty.
func heading(title, path string) string {
	if title == "" {
		return ""
	}
	return `<h2 class="dw-heading"><span` + editable(path) + `>` + esc(title) + `</span></h2>`
}

// formatOffset renders a pixel offset without trailing zeros (142, 142.5).
func formatOffset(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// itemList renders a plain string list as flat list items.
func itemList(items []string, pathPrefix string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, `<li><span%s>%s</span></li>`, editable(fmt.Sprintf("%s.%d", pathPrefix, i)), esc(item))
	}
	return b.String()
}
