package theme

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// gradientLighten is the fixed lightening applied to a color when
// synthesizing the second stop of a gradient.
const gradientLighten = 0.18

// ColorSetting is one visual role a slide template exposes for per-slide
// color override. Gradient settings synthesize a two-stop linear gradient
// from the resolved theme color instead of a flat binding.
type ColorSetting struct {
	Key      string
	Property string
	Gradient bool
}

// settingsByKind maps each template kind to the color settings it exposes.
var settingsByKind = map[deck.TemplateKind][]ColorSetting{
	deck.KindTitle: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "backgroundColor", Property: "--dw-slide-background", Gradient: true},
	},
	deck.KindSection: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "backgroundColor", Property: "--dw-slide-background", Gradient: true},
		{Key: "numberColor", Property: "--dw-number-color"},
	},
	deck.KindBullets: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "bulletColor", Property: "--dw-bullet-color"},
	},
	deck.KindTwoColumns: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "headingColor", Property: "--dw-heading-color"},
	},
	deck.KindImageText: {
		{Key: "titleColor", Property: "--dw-title-color"},
	},
	deck.KindQuote: {
		{Key: "quoteColor", Property: "--dw-quote-color"},
		{Key: "accentColor", Property: "--dw-accent-color", Gradient: true},
	},
	deck.KindStats: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "valueColor", Property: "--dw-value-color", Gradient: true},
	},
	deck.KindCode: {
		{Key: "titleColor", Property: "--dw-title-color"},
	},
	deck.KindCodeAnnotated: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "highlightColor", Property: "--dw-line-highlight"},
	},
	deck.KindTimeline: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "lineColor", Property: "--dw-line-color", Gradient: true},
	},
	deck.KindComparison: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "highlightColor", Property: "--dw-column-highlight"},
	},
	deck.KindMermaid: {
		{Key: "titleColor", Property: "--dw-title-color"},
	},
	deck.KindAgenda: {
		{Key: "titleColor", Property: "--dw-title-color"},
		{Key: "numberColor", Property: "--dw-number-color"},
	},
	deck.KindDrawio: {
		{Key: "titleColor", Property: "--dw-title-color"},
	},
}

// SettingsFor returns the color settings applicable to a template kind.
func SettingsFor(kind deck.TemplateKind) []ColorSetting {
	return settingsByKind[kind]
}

// ResolveSlideStyle emits the inline CSS custom-property declarations for a
// slide's color overrides. A setting is emitted only when the slide's
// override map contains its key; absent settings fall through to the
// stylesheet defaults. Flat settings bind via var() indirection so they stay
// theme-reactive; gradient settings need the concrete resolved color.
func ResolveSlideStyle(kind deck.TemplateKind, overrides map[string]string, resolved map[string]string) string {
	if len(overrides) == 0 {
		return ""
	}

	var decls []string
	for _, setting := range settingsByKind[kind] {
		colorKey, ok := overrides[setting.Key]
		if !ok {
			continue
		}
		if setting.Gradient {
			base := resolved[colorKey]
			decls = append(decls, fmt.Sprintf("%s: %s", setting.Property, Gradient(base)))
		} else {
			decls = append(decls, fmt.Sprintf("%s: var(--dw-color-%s)", setting.Property, colorKey))
		}
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}

// Gradient synthesizes a two-stop linear gradient from a base color and its
// lightened counterpart.
func Gradient(base string) string {
	return fmt.Sprintf("linear-gradient(135deg, %s, %s)", base, Lighten(base, gradientLighten))
}

// Lighten raises the HSL lightness of a hex color toward white by the given
// fraction. Unparseable colors are returned unchanged.
func Lighten(hex string, amount float64) string {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l += (1 - l) * amount
	if l > 1 {
		l = 1
	}
	return colorful.Hsl(h, s, l).Hex()
}

// CustomProperties renders the resolved color map as :root custom-property
// declarations, sorted for deterministic output.
func CustomProperties(resolved map[string]string) string {
	keys := make([]string, 0, len(resolved))
	for k := range resolved {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  --dw-color-%s: %s;\n", k, resolved[k])
	}
	return b.String()
}
