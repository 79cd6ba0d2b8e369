package render

import (
	"fmt"
	"strings"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// Vertical metrics of the annotated code listing. Callout offsets are
// computed against these, so renderer and stylesheet must agree.
const (
	codeLineHeight   = 28.0
	codeHeaderOffset = 16.0
)

func renderCode(d *deck.CodeData) string {
	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<div class="dw-code-block">`)
	if d.Language != "" {
		fmt.Fprintf(&b, `<div class="dw-code-lang">%s</div>`, esc(d.Language))
	}
	fmt.Fprintf(&b, `<pre class="dw-code"><code>%s</code></pre>`, esc(d.Code))
	if d.Caption != "" {
		fmt.Fprintf(&b, `<div class="dw-code-caption"><span%s>%s</span></div>`, editable("caption"), esc(d.Caption))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// annotationSpan is an annotation with its defaults applied.
type annotationSpan struct {
	from, to int
	index    int
}

// normalizeAnnotations applies the lineTo-defaults-to-line rule and drops
// spans with no usable line number.
func normalizeAnnotations(annotations []deck.Annotation) []annotationSpan {
	var spans []annotationSpan
	for i, a := range annotations {
		if a.Line <= 0 {
			continue
		}
		to := a.LineTo
		if to < a.Line {
			to = a.Line
		}
		spans = append(spans, annotationSpan{from: a.Line, to: to, index: i})
	}
	return spans
}

// HighlightedLines computes the set of highlighted line numbers: the union
// of each annotation's [line, lineTo] range.
func HighlightedLines(annotations []deck.Annotation) map[int]bool {
	set := make(map[int]bool)
	for _, span := range normalizeAnnotations(annotations) {
		for l := span.from; l <= span.to; l++ {
			set[l] = true
		}
	}
	return set
}

// AnnotationOffset computes the vertical pixel offset of an annotation's
// callout so it sits beside the vertical midpoint of its highlighted range.
// ellipsisBefore shifts all offsets down by one line height.
func AnnotationOffset(a deck.Annotation, startLine int, ellipsisBefore bool) float64 {
	to := a.LineTo
	if to < a.Line {
		to = a.Line
	}
	mid := (float64(a.Line) + float64(to)) / 2
	offset := codeHeaderOffset + (mid-float64(startLine))*codeLineHeight
	if ellipsisBefore {
		offset += codeLineHeight
	}
	return offset
}

// annotationOwner maps each highlighted line to the index of the annotation
// that owns it. Later annotations win overlapping lines, matching iteration
// order.
func annotationOwner(spans []annotationSpan) map[int]int {
	owner := make(map[int]int)
	for _, span := range spans {
		for l := span.from; l <= span.to; l++ {
			owner[l] = span.index
		}
	}
	return owner
}

func renderCodeAnnotated(d *deck.CodeAnnotatedData) string {
	startLine := d.StartLine
	if startLine <= 0 {
		startLine = 1
	}

	spans := normalizeAnnotations(d.Annotations)
	highlighted := HighlightedLines(d.Annotations)
	owner := annotationOwner(spans)

	var b strings.Builder
	b.WriteString(heading(d.Title, "title"))
	b.WriteString(`<div class="dw-annotated">`)

	// Code pane.
	b.WriteString(`<div class="dw-annotated-code">`)
	if d.Language != "" {
		fmt.Fprintf(&b, `<div class="dw-code-lang">%s</div>`, esc(d.Language))
	}
	b.WriteString(`<pre class="dw-code"><code>`)
	if d.EllipsisBefore {
		b.WriteString(`<span class="dw-code-line dw-ellipsis">⋯</span>`)
	}
	lines := strings.Split(d.Code, "\n")
	for i, line := range lines {
		number := startLine + i
		classes := "dw-code-line"
		if highlighted[number] {
			classes += " dw-highlighted"
			// Boundary marker: this line and the one above are both
			// highlighted but belong to different annotations.
			if prev, ok := owner[number-1]; ok && highlighted[number-1] && prev != owner[number] {
				classes += " dw-annotation-boundary"
			}
		}
		fmt.Fprintf(&b, `<span class="%s"><span class="dw-line-number">%d</span>%s</span>`,
			classes, number, esc(line))
	}
	if d.EllipsisAfter {
		b.WriteString(`<span class="dw-code-line dw-ellipsis">⋯</span>`)
	}
	b.WriteString(`</code></pre></div>`)

	// Callout pane: one absolutely positioned callout per annotation,
	// aligned with the midpoint of its highlighted range.
	b.WriteString(`<div class="dw-callouts">`)
	for _, span := range spans {
		a := d.Annotations[span.index]
		offset := AnnotationOffset(a, startLine, d.EllipsisBefore)
		fmt.Fprintf(&b, `<div class="dw-callout" style="top: %spx">`, formatOffset(offset))
		if a.Title != "" {
			fmt.Fprintf(&b, `<div class="dw-callout-title"><span%s>%s</span></div>`,
				editable(fmt.Sprintf("annotations.%d.title", span.index)), esc(a.Title))
		}
		fmt.Fprintf(&b, `<div class="dw-callout-text"><span%s>%s</span></div>`,
			editable(fmt.Sprintf("annotations.%d.text", span.index)), esc(a.Text))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}
