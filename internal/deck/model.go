package deck

import (
	"time"
)

// TemplateKind identifies one of the closed set of slide layouts.
type TemplateKind string

const (
	KindTitle         TemplateKind = "title"
	KindSection       TemplateKind = "section"
	KindBullets       TemplateKind = "bullets"
	KindTwoColumns    TemplateKind = "two-columns"
	KindImageText     TemplateKind = "image-text"
	KindQuote         TemplateKind = "quote"
	KindStats         TemplateKind = "stats"
	KindCode          TemplateKind = "code"
	KindCodeAnnotated TemplateKind = "code-annotated"
	KindTimeline      TemplateKind = "timeline"
	KindComparison    TemplateKind = "comparison"
	KindMermaid       TemplateKind = "mermaid"
	KindAgenda        TemplateKind = "agenda"
	KindDrawio        TemplateKind = "drawio"
)

// Kinds returns every recognized template kind in presentation-menu order.
func Kinds() []TemplateKind {
	return []TemplateKind{
		KindTitle, KindSection, KindBullets, KindTwoColumns, KindImageText,
		KindQuote, KindStats, KindCode, KindCodeAnnotated, KindTimeline,
		KindComparison, KindMermaid, KindAgenda, KindDrawio,
	}
}

// KnownKind reports whether k is one of the recognized template kinds.
func KnownKind(k TemplateKind) bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Metadata carries the document-level descriptive fields of a presentation.
type Metadata struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Version string `json:"version"`
}

// Theme names a base palette and carries the project's sparse per-key
// color overrides. Override values are raw CSS colors and win over the
// base palette key-by-key.
type Theme struct {
	Base      string            `json:"base"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Clone returns a deep copy of the theme.
func (t Theme) Clone() Theme {
	out := Theme{Base: t.Base}
	if t.Overrides != nil {
		out.Overrides = make(map[string]string, len(t.Overrides))
		for k, v := range t.Overrides {
			out.Overrides[k] = v
		}
	}
	return out
}

// Slide is one {template, data} pair in the presentation's ordered list.
// Colors maps a color-setting key applicable to the slide's template to a
// theme color key, keeping per-slide colors theme-reactive. Notes holds
// optional markdown speaker notes.
type Slide struct {
	Template TemplateKind      `json:"template"`
	Data     SlideData         `json:"data"`
	Colors   map[string]string `json:"colors,omitempty"`
	Notes    string            `json:"notes,omitempty"`
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := Slide{Template: s.Template, Notes: s.Notes}
	if s.Data != nil {
		out.Data = s.Data.CloneData()
	}
	if s.Colors != nil {
		out.Colors = make(map[string]string, len(s.Colors))
		for k, v := range s.Colors {
			out.Colors[k] = v
		}
	}
	return out
}

// Project is the root of the presentation document. An empty Name denotes
// an unsaved/new project. The slide slice ordering is the sole ordering
// authority.
type Project struct {
	Name     string    `json:"name"`
	Metadata Metadata  `json:"metadata"`
	Theme    Theme     `json:"theme"`
	Slides   []Slide   `json:"slides"`
	DriveID  string    `json:"driveId,omitempty"`
	SavedAt  time.Time `json:"savedAt,omitempty"`
}

// Unsaved reports whether the project has never been named/saved.
func (p *Project) Unsaved() bool { return p.Name == "" }

// Clone returns a deep copy of the project. Snapshots handed across the
// store/renderer/sync boundaries must not alias live state.
func (p *Project) Clone() *Project {
	out := &Project{
		Name:     p.Name,
		Metadata: p.Metadata,
		Theme:    p.Theme.Clone(),
		DriveID:  p.DriveID,
		SavedAt:  p.SavedAt,
	}
	if p.Slides != nil {
		out.Slides = make([]Slide, len(p.Slides))
		for i, s := range p.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}

// NewProject returns an unsaved project with the default theme and a single
// title slide.
func NewProject() *Project {
	return &Project{
		Metadata: Metadata{Date: time.Now().Format("2006-01-02"), Version: "1.0"},
		Theme:    Theme{Base: DefaultThemeName},
		Slides:   []Slide{{Template: KindTitle, Data: DefaultData(KindTitle)}},
	}
}

// DefaultThemeName is the base theme applied to new projects.
const DefaultThemeName = "midnight"
