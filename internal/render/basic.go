package render

import (
	"fmt"
	"strings"

	"github.com/deckweaver/deckweaver/internal/deck"
)

func renderTitle(d *deck.TitleData) string {
	var b strings.Builder
	b.WriteString(`<div class="dw-title-layout">`)
	fmt.Fprintf(&b, `<h1 class="dw-title"><span%s>%s</span></h1>`, editable("title"), esc(d.Title))
	if d.Subtitle != "" {
		fmt.Fprintf(&b, `<p class="dw-subtitle"><span%s>%s</span></p>`, editable("subtitle"), esc(d.Subtitle))
	}
	if d.Author != "" || d.Date != "" {
		b.WriteString(`<div class="dw-byline">`)
		if d.Author != "" {
			fmt.Fprintf(&b, `<span%s>%s</span>`, editable("author"), esc(d.Author))
		}
		if d.Author != "" && d.Date != "" {
			b.WriteString(`<span class="dw-byline-sep">·</span>`)
		}
		if d.Date != "" {
			fmt.Fprintf(&b, `<span%s>%s</span>`, editable("date"), esc(d.Date))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderSection(d *deck.SectionData) string {
	var b strings.Builder
	b.WriteString(`<div class="dw-section-layout">`)
	if d.Number != "" {
		fmt.Fprintf(&b, `<div class="dw-section-number"><span%s>%s</span></div>`, editable("number"), esc(d.Number))
	}
	fmt.Fprintf(&b, `<h1 class="dw-section-title"><span%s>%s</span></h1>`, editable("title"), esc(d.Title))
	if d.Subtitle != "" {
		fmt.Fprintf(&b, `<p class="dw-subtitle"><span%s>%s</span></p>`, editable("subtitle"), esc(d.Subtitle))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderAgenda(d *deck.AgendaData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<ol class="dw-agenda">`)
	for i, item := range d.Items {
		marker := "•"
		if d.Numbered {
			marker = fmt.Sprintf("%02d", i+1)
		}
		fmt.Fprintf(&b, `<li class="dw-agenda-item"><span class="dw-agenda-marker">%s</span><span%s>%s</span></li>`,
			esc(marker), editable(fmt.Sprintf("items.%d", i)), esc(item))
	}
	b.WriteString(`</ol>`)
	return b.String()
}

func renderQuote(d *deck.QuoteData) string {
	var b strings.Builder
	b.WriteString(`<figure class="dw-quote-layout">`)
	fmt.Fprintf(&b, `<blockquote class="dw-quote"><span%s>%s</span></blockquote>`, editable("text"), esc(d.Text))
	b.WriteString(`<figcaption class="dw-attribution">`)
	fmt.Fprintf(&b, `<span class="dw-initials" aria-hidden="true">%s</span>`, esc(authorInitials(d.AuthorName)))
	b.WriteString(`<span class="dw-author">`)
	if d.AuthorName != "" {
		fmt.Fprintf(&b, `<span class="dw-author-name"><span%s>%s</span></span>`, editable("authorName"), esc(d.AuthorName))
	}
	if d.AuthorTitle != "" {
		fmt.Fprintf(&b, `<span class="dw-author-title"><span%s>%s</span></span>`, editable("authorTitle"), esc(d.AuthorTitle))
	}
	b.WriteString(`</span></figcaption></figure>`)
	return b.String()
}

// authorInitials derives the avatar initials from a name: first letter of
// each whitespace-separated token, capped at two characters, placeholder
// when the name is absent.
func authorInitials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	var initials []rune
	for _, f := range fields {
		initials = append(initials, []rune(f)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
