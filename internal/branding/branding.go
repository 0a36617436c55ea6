// Package branding holds the company theme manifests and resolves them into
// the token set the page renderer injects as CSS variables. Seasonal looks
// (the winter variant swaps the palette for the snow pages) are variants on
// the one manifest rather than separate themes.
package branding

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/gdlandscaping/sitegen/pkg/render"
)

const (
	// DefaultTheme is the everyday company look.
	DefaultTheme = "gdl"
	// VariantWinter is applied to snow removal pages during the season.
	VariantWinter = "winter"
)

// Manifest returns the company theme manifest.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":   "#1b5e20",
			"color-secondary": "#33691e",
			"color-accent":    "#f9a825",
			"color-surface":   "#fafaf5",
			"color-ink":       "#212121",
			"font-heading":    "'Merriweather', Georgia, serif",
			"font-body":       "'Open Sans', Helvetica, sans-serif",
			"radius":          "6px",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/gdl",
			Files: map[string]string{
				"stylesheet": "site.css",
				"logo":       "logo.svg",
			},
		},
		Variants: map[string]theme.Variant{
			VariantWinter: {
				Tokens: map[string]string{
					"color-primary":   "#0d47a1",
					"color-secondary": "#1565c0",
					"color-accent":    "#e3f2fd",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"hero": "hero-winter.jpg",
					},
				},
			},
		},
	}
}

// Selector resolves theme and variant names to selections. It implements
// theme.ThemeSelector over the manifests registered with it.
type Selector struct {
	manifests map[string]*theme.Manifest
}

// NewSelector registers the given manifests (the company manifest when none
// are passed) and validates them against the go-theme registry.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Manifest()}
	}

	registry := theme.NewRegistry()
	byName := make(map[string]*theme.Manifest, len(manifests))
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("branding: register theme %q: %w", manifest.Name, err)
		}
		byName[manifest.Name] = manifest
	}
	return &Selector{manifests: byName}, nil
}

// Select implements theme.ThemeSelector. An empty name selects the default
// theme; an unknown name or variant is an error rather than a silent
// fallback.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = DefaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("branding: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("branding: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Resolve flattens a selection into the render-layer theme: base tokens
// merged with the variant's overrides, each token mirrored as a --css-var.
func Resolve(selection *theme.Selection) render.Theme {
	if selection == nil || selection.Manifest == nil {
		return render.Theme{}
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return render.Theme{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}
