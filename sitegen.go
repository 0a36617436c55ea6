package sitegen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/orchestrator"
	"github.com/gdlandscaping/sitegen/pkg/render"
)

// Options describes per-request overrides renderers can use to add hidden
// form fields, prefill values, or surface a lead relay error.
type Options = render.Options

// Theme carries resolved branding tokens for a render pass.
type Theme = render.Theme

// Request selects the page, renderer, and theme for one render.
type Request = orchestrator.Request

// Result is a rendered page plus its serving metadata.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want to hold the pipeline.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePage resolves the path against the embedded content registry and
// renders it. It is the simplest entry point for callers that just want the
// HTML for one page.
func GeneratePage(ctx context.Context, path string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{Path: path})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// GenerateSite renders every routable page, the full static build.
func GenerateSite(ctx context.Context, options ...orchestrator.Option) ([]orchestrator.Result, error) {
	gen := orchestrator.New(options...)
	return gen.GenerateAll(ctx)
}

// WithContentRegistry forwards a pre-built content registry to the
// orchestrator, mainly for tests and previews of unpublished records.
func WithContentRegistry(registry *content.Registry) orchestrator.Option {
	return orchestrator.WithContentRegistry(registry)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so theme and variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeDefaults sets the theme and variant used when a request names
// none.
func WithThemeDefaults(name, variant string) orchestrator.Option {
	return orchestrator.WithThemeDefaults(name, variant)
}
