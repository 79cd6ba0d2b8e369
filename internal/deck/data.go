package deck

import (
	"encoding/json"
)

// SlideData is the closed union of per-template data shapes. Each shape
// declares its kind and knows how to deep-copy itself.
type SlideData interface {
	Kind() TemplateKind
	CloneData() SlideData
}

// TitleData backs the opening slide.
type TitleData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Author   string `json:"author,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (d *TitleData) Kind() TemplateKind { return KindTitle }
func (d *TitleData) CloneData() SlideData {
	c := *d
	return &c
}

// SectionData is a chapter divider.
type SectionData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Number   string `json:"number,omitempty"`
}

func (d *SectionData) Kind() TemplateKind { return KindSection }
func (d *SectionData) CloneData() SlideData {
	c := *d
	return &c
}

// BulletItem is one entry in a bullets slide. Level drives visual
// indentation (0-3); the rendered list stays flat.
type BulletItem struct {
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"`
}

// UnmarshalJSON accepts either a plain string or a {text, level} object.
func (b *BulletItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Text = s
		b.Level = 0
		return nil
	}
	type alias BulletItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = BulletItem(a)
	return nil
}

// BulletsData is a flat bullet list with per-item indent levels.
type BulletsData struct {
	Title string       `json:"title"`
	Items []BulletItem `json:"items"`
}

func (d *BulletsData) Kind() TemplateKind { return KindBullets }
func (d *BulletsData) CloneData() SlideData {
	c := &BulletsData{Title: d.Title}
	if d.Items != nil {
		c.Items = append([]BulletItem(nil), d.Items...)
	}
	return c
}

// Column is one side of a two-columns slide.
type Column struct {
	Heading string   `json:"heading,omitempty"`
	Items   []string `json:"items,omitempty"`
}

func (c Column) clone() Column {
	out := Column{Heading: c.Heading}
	if c.Items != nil {
		out.Items = append([]string(nil), c.Items...)
	}
	return out
}

// TwoColumnsData holds two side-by-side bullet columns.
type TwoColumnsData struct {
	Title string `json:"title"`
	Left  Column `json:"left"`
	Right Column `json:"right"`
}

func (d *TwoColumnsData) Kind() TemplateKind { return KindTwoColumns }
func (d *TwoColumnsData) CloneData() SlideData {
	return &TwoColumnsData{Title: d.Title, Left: d.Left.clone(), Right: d.Right.clone()}
}

// ImageTextData pairs an image with body text. Position selects which side
// the image sits on ("left" or "right").
type ImageTextData struct {
	Title    string   `json:"title"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Alt      string   `json:"alt,omitempty"`
	Text     string   `json:"text,omitempty"`
	Items    []string `json:"items,omitempty"`
	Position string   `json:"position,omitempty"`
}

func (d *ImageTextData) Kind() TemplateKind { return KindImageText }
func (d *ImageTextData) CloneData() SlideData {
	c := *d
	if d.Items != nil {
		c.Items = append([]string(nil), d.Items...)
	}
	return &c
}

// QuoteData is a pull quote with attribution.
type QuoteData struct {
	Text        string `json:"text"`
	AuthorName  string `json:"authorName,omitempty"`
	AuthorTitle string `json:"authorTitle,omitempty"`
}

func (d *QuoteData) Kind() TemplateKind { return KindQuote }
func (d *QuoteData) CloneData() SlideData {
	c := *d
	return &c
}

// Stat is one headline figure on a stats slide.
type Stat struct {
	Value       string `json:"value"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// StatsData is a row of headline figures.
type StatsData struct {
	Title string `json:"title"`
	Items []Stat `json:"items"`
}

func (d *StatsData) Kind() TemplateKind { return KindStats }
func (d *StatsData) CloneData() SlideData {
	c := &StatsData{Title: d.Title}
	if d.Items != nil {
		c.Items = append([]Stat(nil), d.Items...)
	}
	return c
}

// CodeData is a plain code listing.
type CodeData struct {
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
	Caption  string `json:"caption,omitempty"`
}

func (d *CodeData) Kind() TemplateKind { return KindCode }
func (d *CodeData) CloneData() SlideData {
	c := *d
	return &c
}

// Annotation marks a line range of a code-annotated slide and carries the
// callout placed beside it. LineTo defaults to Line when zero.
type Annotation struct {
	Line   int    `json:"line"`
	LineTo int    `json:"lineTo,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text"`
}

// CodeAnnotatedData is a code listing with highlighted ranges and callouts.
// StartLine is the line number of the first real code line. The ellipsis
// flags insert pseudo-lines before/after the listing.
type CodeAnnotatedData struct {
	Title          string       `json:"title"`
	Language       string       `json:"language,omitempty"`
	Code           string       `json:"code"`
	StartLine      int          `json:"startLine,omitempty"`
	EllipsisBefore bool         `json:"ellipsisBefore,omitempty"`
	EllipsisAfter  bool         `json:"ellipsisAfter,omitempty"`
	Annotations    []Annotation `json:"annotations,omitempty"`
}

func (d *CodeAnnotatedData) Kind() TemplateKind { return KindCodeAnnotated }
func (d *CodeAnnotatedData) CloneData() SlideData {
	c := *d
	if d.Annotations != nil {
		c.Annotations = append([]Annotation(nil), d.Annotations...)
	}
	return &c
}

// TimelineStep is one milestone on a timeline slide.
type TimelineStep struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Label       string `json:"label,omitempty"`
}

// TimelineData is an ordered sequence of milestones.
type TimelineData struct {
	Title string         `json:"title"`
	Steps []TimelineStep `json:"steps"`
}

func (d *TimelineData) Kind() TemplateKind { return KindTimeline }
func (d *TimelineData) CloneData() SlideData {
	c := &TimelineData{Title: d.Title}
	if d.Steps != nil {
		c.Steps = append([]TimelineStep(nil), d.Steps...)
	}
	return c
}

// CellKind discriminates the comparison cell variant.
type CellKind int

const (
	// CellText is a free-form, user-editable text cell.
	CellText CellKind = iota
	// CellBool renders as a check/cross glyph and is not editable text.
	CellBool
)

// Cell is one comparison-table cell: either editable text or a boolean
// glyph. JSON booleans and the literal strings "true"/"false" decode as
// CellBool; everything else is text.
type Cell struct {
	Kind CellKind
	Text string
	Bool bool
}

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// BoolCell returns a boolean glyph cell.
func BoolCell(v bool) Cell { return Cell{Kind: CellBool, Bool: v} }

func (c *Cell) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = BoolCell(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "true":
		*c = BoolCell(true)
	case "false":
		*c = BoolCell(false)
	default:
		*c = TextCell(s)
	}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Kind == CellBool {
		return json.Marshal(c.Bool)
	}
	return json.Marshal(c.Text)
}

// ComparisonData is a feature matrix. HighlightColumn is 1-based; zero
// means no highlighted column.
type ComparisonData struct {
	Title           string   `json:"title"`
	Columns         []string `json:"columns"`
	Rows            [][]Cell `json:"rows"`
	HighlightColumn int      `json:"highlightColumn,omitempty"`
}

func (d *ComparisonData) Kind() TemplateKind { return KindComparison }
func (d *ComparisonData) CloneData() SlideData {
	c := &ComparisonData{Title: d.Title, HighlightColumn: d.HighlightColumn}
	if d.Columns != nil {
		c.Columns = append([]string(nil), d.Columns...)
	}
	if d.Rows != nil {
		c.Rows = make([][]Cell, len(d.Rows))
		for i, row := range d.Rows {
			c.Rows[i] = append([]Cell(nil), row...)
		}
	}
	return c
}

// MermaidData embeds a mermaid diagram source.
type MermaidData struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Caption string `json:"caption,omitempty"`
}

func (d *MermaidData) Kind() TemplateKind { return KindMermaid }
func (d *MermaidData) CloneData() SlideData {
	c := *d
	return &c
}

// AgendaData lists the talk's sections.
type AgendaData struct {
	Title    string   `json:"title"`
	Items    []string `json:"items"`
	Numbered bool     `json:"numbered,omitempty"`
}

func (d *AgendaData) Kind() TemplateKind { return KindAgenda }
func (d *AgendaData) CloneData() SlideData {
	c := &AgendaData{Title: d.Title, Numbered: d.Numbered}
	if d.Items != nil {
		c.Items = append([]string(nil), d.Items...)
	}
	return c
}

// DrawioData embeds a draw.io diagram as its XML payload.
type DrawioData struct {
	Title   string `json:"title"`
	XML     string `json:"xml"`
	Caption string `json:"caption,omitempty"`
}

func (d *DrawioData) Kind() TemplateKind { return KindDrawio }
func (d *DrawioData) CloneData() SlideData {
	c := *d
	return &c
}

// UnknownData preserves the raw payload of a slide whose template kind is
// not recognized. Such slides render as a visible fallback and must never
// crash the editor.
type UnknownData struct {
	Template TemplateKind
	Raw      json.RawMessage
}

func (d *UnknownData) Kind() TemplateKind { return d.Template }
func (d *UnknownData) CloneData() SlideData {
	c := &UnknownData{Template: d.Template}
	if d.Raw != nil {
		c.Raw = append(json.RawMessage(nil), d.Raw...)
	}
	return c
}

// DefaultData returns the starter data shape for a newly added slide of the
// given kind. Unknown kinds get an empty UnknownData payload.
func DefaultData(kind TemplateKind) SlideData {
	switch kind {
	case KindTitle:
		return &TitleData{Title: "Presentation Title", Subtitle: "Subtitle"}
	case KindSection:
		return &SectionData{Title: "Section Title"}
	case KindBullets:
		return &BulletsData{Title: "Key Points", Items: []BulletItem{{Text: "First point"}, {Text: "Second point"}}}
	case KindTwoColumns:
		return &TwoColumnsData{
			Title: "Two Columns",
			Left:  Column{Heading: "Left", Items: []string{"Item"}},
			Right: Column{Heading: "Right", Items: []string{"Item"}},
		}
	case KindImageText:
		return &ImageTextData{Title: "Image & Text", Text: "Describe the image here.", Position: "left"}
	case KindQuote:
		return &QuoteData{Text: "Quote text", AuthorName: "Author Name"}
	case KindStats:
		return &StatsData{Title: "By the Numbers", Items: []Stat{{Value: "42%", Label: "Metric"}}}
	case KindCode:
		return &CodeData{Title: "Code", Language: "go", Code: "fmt.Println(\"hello\")"}
	case KindCodeAnnotated:
		return &CodeAnnotatedData{Title: "Code Walkthrough", Language: "go", Code: "fmt.Println(\"hello\")", StartLine: 1}
	case KindTimeline:
		return &TimelineData{Title: "Timeline", Steps: []TimelineStep{{Title: "Start"}, {Title: "Finish"}}}
	case KindComparison:
		return &ComparisonData{
			Title:   "Comparison",
			Columns: []string{"Option A", "Option B"},
			Rows:    [][]Cell{{TextCell("Feature"), BoolCell(true)}},
		}
	case KindMermaid:
		return &MermaidData{Title: "Diagram", Source: "graph TD\n    A --> B"}
	case KindAgenda:
		return &AgendaData{Title: "Agenda", Items: []string{"Introduction"}, Numbered: true}
	case KindDrawio:
		return &DrawioData{Title: "Diagram"}
	default:
		return &UnknownData{Template: kind}
	}
}
