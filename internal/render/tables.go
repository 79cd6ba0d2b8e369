package render

import (
	"fmt"
	"strings"

	"github.com/deckweaver/deckweaver/internal/deck"
)

func renderComparison(d *deck.ComparisonData) string {
	// Highlight index is 1-based in the data model.
	highlight := d.HighlightColumn - 1

	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<table class="dw-comparison"><thead><tr>`)
	for j, col := range d.Columns {
		class := "dw-comparison-col"
		if j == highlight {
			class += " dw-highlighted-col"
		}
		fmt.Fprintf(&b, `<th class="%s"><span%s>%s</span></th>`,
			class, editable(fmt.Sprintf("columns.%d", j)), esc(col))
	}
	b.WriteString(`</tr></thead><tbody>`)
	for i, row := range d.Rows {
		b.WriteString(`<tr>`)
		for j, cell := range row {
			class := ""
			if j == highlight {
				class = ` class="dw-highlighted-col"`
			}
			fmt.Fprintf(&b, `<td%s>%s</td>`, class, renderCell(cell, fmt.Sprintf("rows.%d.%d", i, j)))
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// renderCell renders the typed cell variant: boolean cells become fixed
// check/cross glyphs and carry no editable-text attributes; text cells are
// escaped editable spans.
func renderCell(c deck.Cell, path string) string {
	if c.Kind == deck.CellBool {
		if c.Bool {
			return `<span class="dw-check" aria-label="yes">✓</span>`
		}
		return `<span class="dw-cross" aria-label="no">✗</span>`
	}
	return fmt.Sprintf(`<span%s>%s</span>`, editable(path), esc(c.Text))
}

func renderTimeline(d *deck.TimelineData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))

	n := len(d.Steps)
	b.WriteString(`<div class="dw-timeline">`)
	if n > 1 {
		// The connecting line spans from the center of the first icon to the
		// center of the last, whatever the step count: each step occupies
		// 100%/n, so both end insets are half a step.
		fmt.Fprintf(&b, `<div class="dw-timeline-line" style="left: calc(50%% / %d); width: calc(100%% - 100%% / %d)"></div>`, n, n)
	}
	for i, step := range d.Steps {
		b.WriteString(`<div class="dw-timeline-step">`)
		fmt.Fprintf(&b, `<div class="dw-timeline-icon">%d</div>`, i+1)
		if step.Label != "" {
			fmt.Fprintf(&b, `<div class="dw-timeline-label"><span%s>%s</span></div>`,
				editable(fmt.Sprintf("steps.%d.label", i)), esc(step.Label))
		}
		fmt.Fprintf(&b, `<div class="dw-timeline-title"><span%s>%s</span></div>`,
			editable(fmt.Sprintf("steps.%d.title", i)), esc(step.Title))
		if step.Description != "" {
			fmt.Fprintf(&b, `<div class="dw-timeline-desc"><span%s>%s</span></div>`,
				editable(fmt.Sprintf("steps.%d.description", i)), esc(step.Description))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderMermaid(d *deck.MermaidData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	fmt.Fprintf(&b, `<div class="dw-diagram"><pre class="mermaid">%s</pre></div>`, esc(d.Source))
	if d.Caption != "" {
		fmt.Fprintf(&b, `<div class="dw-diagram-caption"><span%s>%s</span></div>`, editable("caption"), esc(d.Caption))
	}
	return b.String()
}

func renderDrawio(d *deck.DrawioData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	if d.XML == "" {
		b.WriteString(`<div class="dw-diagram dw-image-placeholder">No diagram</div>`)
	} else {
		fmt.Fprintf(&b, `<div class="dw-diagram dw-drawio" data-diagram="%s"></div>`, esc(d.XML))
	}
	if d.Caption != "" {
		fmt.Fprintf(&b, `<div class="dw-diagram-caption"><span%s>%s</span></div>`, editable("caption"), esc(d.Caption))
	}
	return b.String()
}
