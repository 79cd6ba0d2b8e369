package render

import (
	"fmt"
	"strings"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// maxBulletLevel caps indentation depth; levels beyond it clamp.
const maxBulletLevel = 3

// renderBullets emits a flat list whose visual nesting is driven entirely by
// a per-item level attribute, never by nested <ul> elements.
func renderBullets(d *deck.BulletsData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<ul class="dw-bullets">`)
	for i, item := range d.Items {
		level := item.Level
		if level < 0 {
			level = 0
		}
		if level > maxBulletLevel {
			level = maxBulletLevel
		}
		fmt.Fprintf(&b, `<li class="dw-bullet" data-level="%d"><span%s>%s</span></li>`,
			level, editable(fmt.Sprintf("items.%d.text", i)), esc(item.Text))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func renderTwoColumns(d *deck.TwoColumnsData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<div class="dw-columns">`)
	b.WriteString(renderColumn(d.Left, "left"))
	b.WriteString(renderColumn(d.Right, "right"))
	b.WriteString(`</div>`)
	return b.String()
}

func renderColumn(c deck.Column, side string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="dw-column dw-column-%s">`, side)
	if c.Heading != "" {
		fmt.Fprintf(&b, `<h3 class="dw-column-heading"><span%s>%s</span></h3>`,
			editable(side+".heading"), esc(c.Heading))
	}
	b.WriteString(`<ul class="dw-column-items">`)
	b.WriteString(itemList(c.Items, side+".items"))
	b.WriteString(`</ul></div>`)
	return b.String()
}

func renderImageText(d *deck.ImageTextData) string {
	position := d.Position
	if position != "right" {
		position = "left"
	}

	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	fmt.Fprintf(&b, `<div class="dw-image-text dw-image-%s">`, position)

	b.WriteString(`<div class="dw-image-pane">`)
	if d.ImageURL != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s">`, esc(d.ImageURL), esc(d.Alt))
	} else {
		b.WriteString(`<div class="dw-image-placeholder">No image</div>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="dw-text-pane">`)
	if d.Text != "" {
		fmt.Fprintf(&b, `<p%s>%s</p>`, editable("text"), esc(d.Text))
	}
	if len(d.Items) > 0 {
		b.WriteString(`<ul class="dw-text-items">`)
		b.WriteString(itemList(d.Items, "items"))
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func renderStats(d *deck.StatsData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<div class="dw-stats">`)
	for i, stat := range d.Items {
		b.WriteString(`<div class="dw-stat">`)
		fmt.Fprintf(&b, `<div class="dw-stat-value"><span%s>%s</span></div>`,
			editable(fmt.Sprintf("items.%d.value", i)), esc(stat.Value))
		if stat.Label != "" {
			fmt.Fprintf(&b, `<div class="dw-stat-label"><span%s>%s</span></div>`,
				editable(fmt.Sprintf("items.%d.label", i)), esc(stat.Label))
		}
		if stat.Description != "" {
			fmt.Fprintf(&b, `<div class="dw-stat-desc"><span%s>%s</span></div>`,
				editable(fmt.Sprintf("items.%d.description", i)), esc(stat.Description))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
