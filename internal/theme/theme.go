// Package theme resolves a project's named base palette plus sparse
// overrides into the final color map consumed by the renderer and exporter.
package theme

import (
	"fmt"
	"sort"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// ColorKeys is the fixed set of recognized theme color keys. Resolution is
// total over this set: every key always resolves to a value.
var ColorKeys = []string{
	"background",
	"surface",
	"primary",
	"accent",
	"text",
	"muted",
	"border",
	"codeBackground",
	"highlight",
}

// BaseTheme is a named built-in palette.
type BaseTheme struct {
	Name   string
	Label  string
	Colors map[string]string
}

// baseThemes holds the built-in palettes, keyed by name.
var baseThemes = map[string]BaseTheme{
	"midnight": {
		Name:  "midnight",
		Label: "Midnight",
		Colors: map[string]string{
			"background":     "#1a1b26",
			"surface":        "#24283b",
			"primary":        "#7aa2f7",
			"accent":         "#bb9af7",
			"text":           "#c0caf5",
			"muted":          "#565f89",
			"border":         "#292e42",
			"codeBackground": "#16161e",
			"highlight":      "#e0af68",
		},
	},
	"daylight": {
		Name:  "daylight",
		Label: "Daylight",
		Colors: map[string]string{
			"background":     "#ffffff",
			"surface":        "#f8f9fa",
			"primary":        "#228be6",
			"accent":         "#7048e8",
			"text":           "#212529",
			"muted":          "#868e96",
			"border":         "#dee2e6",
			"codeBackground": "#f1f3f5",
			"highlight":      "#f59f00",
		},
	},
	"forest": {
		Name:  "forest",
		Label: "Forest",
		Colors: map[string]string{
			"background":     "#10231a",
			"surface":        "#1a3328",
			"primary":        "#69db7c",
			"accent":         "#38d9a9",
			"text":           "#e6f4ea",
			"muted":          "#5f8a72",
			"border":         "#274435",
			"codeBackground": "#0b1b13",
			"highlight":      "#ffd43b",
		},
	},
	"slate": {
		Name:  "slate",
		Label: "Slate",
		Colors: map[string]string{
			"background":     "#212529",
			"surface":        "#2b3035",
			"primary":        "#4dabf7",
			"accent":         "#ff8787",
			"text":           "#e9ecef",
			"muted":          "#868e96",
			"border":         "#343a40",
			"codeBackground": "#1a1d20",
			"highlight":      "#ffe066",
		},
	},
}

// UnknownThemeError reports a theme referencing a base palette that does not
// exist.
type UnknownThemeError struct {
	Name string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown base theme %q", e.Name)
}

// Base returns the named built-in palette.
func Base(name string) (BaseTheme, error) {
	bt, ok := baseThemes[name]
	if !ok {
		return BaseTheme{}, &UnknownThemeError{Name: name}
	}
	return bt, nil
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(baseThemes))
	for name := range baseThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveColors merges the theme's base palette with its per-key overrides.
// Override values are used verbatim; invalid CSS is a rendering concern, not
// a resolver concern. The result contains every key in ColorKeys.
func ResolveColors(t deck.Theme) (map[string]string, error) {
	base, err := Base(t.Base)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]string, len(ColorKeys))
	for _, key := range ColorKeys {
		resolved[key] = base.Colors[key]
		if v, ok := t.Overrides[key]; ok {
			resolved[key] = v
		}
	}
	return resolved, nil
}
