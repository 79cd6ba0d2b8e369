package deck

import (
	"encoding/json"
	"fmt"
)

// slideWire is the on-disk/wire form of a slide. The data payload is decoded
// into the shape selected by the template kind.
type slideWire struct {
	Template TemplateKind      `json:"template"`
	Data     json.RawMessage   `json:"data"`
	Colors   map[string]string `json:"colors,omitempty"`
	Notes    string            `json:"notes,omitempty"`
}

// UnmarshalJSON decodes the tagged union. A recognized template kind with a
// malformed data payload is an error; an unrecognized kind preserves the raw
// payload so the slide can round-trip and render as a fallback.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var w slideWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.Template = w.Template
	s.Colors = w.Colors
	s.Notes = w.Notes

	if !KnownKind(w.Template) {
		s.Data = &UnknownData{Template: w.Template, Raw: w.Data}
		return nil
	}

	target := emptyData(w.Template)
	if len(w.Data) > 0 {
		if err := json.Unmarshal(w.Data, target); err != nil {
			return fmt.Errorf("decoding %s slide data: %w", w.Template, err)
		}
	}
	s.Data = target
	return nil
}

func (s Slide) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if u, ok := s.Data.(*UnknownData); ok {
		raw = u.Raw
	} else if s.Data != nil {
		b, err := json.Marshal(s.Data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s slide data: %w", s.Template, err)
		}
		raw = b
	}
	if raw == nil {
		raw = json.RawMessage("{}")
	}
	return json.Marshal(slideWire{
		Template: s.Template,
		Data:     raw,
		Colors:   s.Colors,
		Notes:    s.Notes,
	})
}

// emptyData returns a zero-valued data shape for a recognized kind.
func emptyData(kind TemplateKind) SlideData {
	switch kind {
	case KindTitle:
		return &TitleData{}
	case KindSection:
		return &SectionData{}
	case KindBullets:
		return &BulletsData{}
	case KindTwoColumns:
		return &TwoColumnsData{}
	case KindImageText:
		return &ImageTextData{}
	case KindQuote:
		return &QuoteData{}
	case KindStats:
		return &StatsData{}
	case KindCode:
		return &CodeData{}
	case KindCodeAnnotated:
		return &CodeAnnotatedData{}
	case KindTimeline:
		return &TimelineData{}
	case KindComparison:
		return &ComparisonData{}
	case KindMermaid:
		return &MermaidData{}
	case KindAgenda:
		return &AgendaData{}
	case KindDrawio:
		return &DrawioData{}
	default:
		return &UnknownData{Template: kind}
	}
}
